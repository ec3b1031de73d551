package domain

type ctxKey string

// PrincipalCtxKey carries the authenticated admin principal through a
// request context.
const PrincipalCtxKey ctxKey = "loom-principal"

// Anti-forgery token namespaces, one per mutating action.
const (
	NonceContentType = "content-type"
	NonceTaxonomy    = "taxonomy"
	NonceMetaBox     = "meta-box"
	NonceFieldRow    = "field-row"
	NonceRecordSave  = "record-save"
	NonceReset       = "reset"
)

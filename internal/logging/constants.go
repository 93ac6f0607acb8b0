package logging

// Standardized field names for structured logging.
const (
	FieldOperation     = "operation"
	FieldComponent     = "component"
	FieldError         = "error"
	FieldCount         = "count"
	FieldImported      = "imported"
	FieldFailed        = "failed"
	FieldLine          = "line"
	FieldReason        = "reason"
	FieldCategory      = "category"
	FieldCategoryID    = "category_id"
	FieldTransactionID = "transaction_id"
	FieldAmount        = "amount"
	FieldPeriodStart   = "period_start"
	FieldBalance       = "beginning_balance"
	FieldBackend       = "backend"
	FieldFile          = "file_path"
	FieldEvent         = "event"
)

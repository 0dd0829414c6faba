package domain

// Canonical field names shared by every stage after normalization.
const (
	FieldSheetName = "SHEET_NAME"
	FieldOrderDate = "ORDER_DATE"
	FieldYear      = "YEAR"
	FieldMonth     = "MONTH"
	FieldYearMonth = "YEAR_MONTH"
	FieldValue     = "VALUE"

	FieldOrderNumber      = "ORDER_NUMBER"
	FieldResponsibleUser  = "RESPONSIBLE_USER"
	FieldOrderSource      = "ORDER_SOURCE"
	FieldOrderStatus      = "ORDER_STATUS"
	FieldCustomerName     = "CUSTOMER_NAME"
	FieldCustomerCode     = "CUSTOMER_CODE"
	FieldCommercialPolicy = "COMMERCIAL_POLICY"
	FieldPaymentTerms     = "PAYMENT_TERMS"

	// SynthesizedValueField names the all-zero value column created when the
	// workbook has no recognizable monetary column.
	SynthesizedValueField = "VALOR_FATURADO"

	// DefaultDateColumn is the order-date header used by the source report.
	DefaultDateColumn = "DATA DO PEDIDO"
)

// CanonicalFields lists the business fields produced by the rename rules, in rule priority order.
var CanonicalFields = []string{
	FieldOrderNumber,
	FieldResponsibleUser,
	FieldOrderSource,
	FieldOrderStatus,
	FieldCustomerName,
	FieldCustomerCode,
	FieldCommercialPolicy,
	FieldPaymentTerms,
}

package constants

const (
	Group1 = "Grupo 1"
	Group2 = "Grupo 2"
	Group3 = "Grupo 3"

	// AchievementColumn is the first column of every group table.
	AchievementColumn = "% logro"
)

// Input columns of the "Ficha" sheet consumed by the group tables.
const (
	ColProformaClose  = "Cierre de Proforma"
	ColDownPaymentEnd = "Fin de pago de cuota inicial"
	ColDirectCredit50 = "50% cuota del Credito directo"
	ColDisbursement   = "Desembolso"
)

// Target resolves an input column to a milestone row. When ByPaymentForm is
// set the row depends on the record's FORMA DE PAGO and Row is ignored.
type Target struct {
	Row           string
	ByPaymentForm map[string]string
}

// Resolve returns the milestone row for a payment form code.
func (t Target) Resolve(paymentForm string) (string, bool) {
	if t.ByPaymentForm == nil {
		return t.Row, t.Row != ""
	}
	row, ok := t.ByPaymentForm[paymentForm]
	return row, ok
}

type GroupDefinition struct {
	Name        string
	Rows        []string
	Achievement map[string]string
	Columns     []string
	Targets     map[string]Target
}

// RowIndex returns the position of a milestone row or -1.
func (g GroupDefinition) RowIndex(row string) int {
	for i, r := range g.Rows {
		if r == row {
			return i
		}
	}
	return -1
}

// Groups lists the group tables in report order.
var Groups = []string{Group1, Group2, Group3}

var GroupDefinitions = map[string]GroupDefinition{
	Group1: {
		Name: Group1,
		Rows: []string{
			"Contado",
			"Cierre de Proforma CO",
			"Crédito Hipotecario cuota inicial completa",
			"Cierre de Proforma CIC",
			"Desembolso CIC",
			"Crédito Hipotecario cuota inicial fraccionado",
			"Cierre de Proforma CIF",
			"Fin de pago de cuota inicial CIF",
			"Desembolso CIF",
			"Crédito Directo",
			"Cierre de Proforma CD",
			"50% cuota del Credito directo CD",
		},
		Achievement: map[string]string{
			"Contado":               "",
			"Cierre de Proforma CO": "100%",
			"Crédito Hipotecario cuota inicial completa":    "",
			"Cierre de Proforma CIC":                        "80%",
			"Desembolso CIC":                                "20%",
			"Crédito Hipotecario cuota inicial fraccionado": "",
			"Cierre de Proforma CIF":                        "70%",
			"Fin de pago de cuota inicial CIF":              "10%",
			"Desembolso CIF":                                "20%",
			"Crédito Directo":                               "",
			"Cierre de Proforma CD":                         "80%",
			"50% cuota del Credito directo CD":              "20%",
		},
		Columns: []string{ColProformaClose, ColDownPaymentEnd, ColDirectCredit50, ColDisbursement},
		Targets: map[string]Target{
			ColProformaClose: {ByPaymentForm: map[string]string{
				"CO":  "Cierre de Proforma CO",
				"CIC": "Cierre de Proforma CIC",
				"CIF": "Cierre de Proforma CIF",
				"CD":  "Cierre de Proforma CD",
			}},
			ColDisbursement: {ByPaymentForm: map[string]string{
				"CIC": "Desembolso CIC",
				"CIF": "Desembolso CIF",
			}},
			ColDownPaymentEnd: {Row: "Fin de pago de cuota inicial CIF"},
			ColDirectCredit50: {Row: "50% cuota del Credito directo CD"},
		},
	},
	Group2: savingsPlanGroup(Group2, "Plan Ahorro - Hasta 9 Meses"),
	Group3: savingsPlanGroup(Group3, "Plan Ahorro - Hasta 6 Meses"),
}

// savingsPlanGroup builds the savings plan layout shared by groups 2 and 3,
// which differ only in the label of the first row.
func savingsPlanGroup(name, firstRow string) GroupDefinition {
	return GroupDefinition{
		Name: name,
		Rows: []string{
			firstRow,
			"Cierre Plan Ahorro - Mixto",
			"Fin de pago de cuotas de plan Ahorro",
			"Desembolso",
		},
		Achievement: map[string]string{
			firstRow:                               "",
			"Cierre Plan Ahorro - Mixto":           "60%",
			"Fin de pago de cuotas de plan Ahorro": "10%",
			"Desembolso":                           "30%",
		},
		Columns: []string{ColProformaClose, ColDownPaymentEnd, ColDisbursement},
		Targets: map[string]Target{
			ColProformaClose: {ByPaymentForm: map[string]string{
				"CO": firstRow,
				"PA": "Cierre Plan Ahorro - Mixto",
			}},
			ColDownPaymentEnd: {Row: "Fin de pago de cuotas de plan Ahorro"},
			ColDisbursement:   {Row: "Desembolso"},
		},
	}
}

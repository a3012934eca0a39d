package calculator

// Labels holds the fixed wording of a rendered receipt.
type Labels struct {
	Imported  string // appended to the name of imported goods
	Header    string
	TaxSum    string
	Total     string
	Separator string
}

var (
	// DefaultLabels renders English receipts.
	DefaultLabels = Labels{
		Imported:  "imported",
		Header:    "===== Products bill =====",
		TaxSum:    "Sales taxes",
		Total:     "Total",
		Separator: "=========================",
	}

	// FrenchLabels renders receipts with the French wording.
	FrenchLabels = Labels{
		Imported:  "importé(e)",
		Header:    "===== Products bill =====",
		TaxSum:    "Montant des taxes",
		Total:     "Total",
		Separator: "=========================",
	}
)

// LabelsFor returns the labels for a language code ("en" or "fr").
func LabelsFor(lang string) (Labels, bool) {
	switch lang {
	case "", "en":
		return DefaultLabels, true
	case "fr":
		return FrenchLabels, true
	}
	return Labels{}, false
}

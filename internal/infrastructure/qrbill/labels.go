package qrbill

import "github.com/Xausdorf/qr-bill-hub/internal/domain/bill"

type labels struct {
	receipt          string
	paymentPart      string
	accountPayableTo string
	reference        string
	additionalInfo   string
	payableBy        string
	payableByBlank   string
	currency         string
	amount           string
	acceptancePoint  string
}

var labelsByLanguage = map[bill.Language]labels{
	bill.LanguageDE: {
		receipt:          "Empfangsschein",
		paymentPart:      "Zahlteil",
		accountPayableTo: "Konto / Zahlbar an",
		reference:        "Referenz",
		additionalInfo:   "Zusätzliche Informationen",
		payableBy:        "Zahlbar durch",
		payableByBlank:   "Zahlbar durch (Name/Adresse)",
		currency:         "Währung",
		amount:           "Betrag",
		acceptancePoint:  "Annahmestelle",
	},
	bill.LanguageFR: {
		receipt:          "Récépissé",
		paymentPart:      "Section paiement",
		accountPayableTo: "Compte / Payable à",
		reference:        "Référence",
		additionalInfo:   "Informations supplémentaires",
		payableBy:        "Payable par",
		payableByBlank:   "Payable par (nom/adresse)",
		currency:         "Monnaie",
		amount:           "Montant",
		acceptancePoint:  "Point de dépôt",
	},
	bill.LanguageIT: {
		receipt:          "Ricevuta",
		paymentPart:      "Sezione pagamento",
		accountPayableTo: "Conto / Pagabile a",
		reference:        "Riferimento",
		additionalInfo:   "Informazioni supplementari",
		payableBy:        "Pagabile da",
		payableByBlank:   "Pagabile da (nome/indirizzo)",
		currency:         "Valuta",
		amount:           "Importo",
		acceptancePoint:  "Punto di accettazione",
	},
	bill.LanguageRM: {
		receipt:          "Quittanza",
		paymentPart:      "Part da pajament",
		accountPayableTo: "Conto / Pajabel a",
		reference:        "Referenza",
		additionalInfo:   "Infurmaziuns supplementaras",
		payableBy:        "Pajabel da",
		payableByBlank:   "Pajabel da (num/adressa)",
		currency:         "Valuta",
		amount:           "Import",
		acceptancePoint:  "Post da consegna",
	},
	bill.LanguageEN: {
		receipt:          "Receipt",
		paymentPart:      "Payment part",
		accountPayableTo: "Account / Payable to",
		reference:        "Reference",
		additionalInfo:   "Additional information",
		payableBy:        "Payable by",
		payableByBlank:   "Payable by (name/address)",
		currency:         "Currency",
		amount:           "Amount",
		acceptancePoint:  "Acceptance point",
	},
}

func labelsFor(l bill.Language) labels {
	if lb, ok := labelsByLanguage[l]; ok {
		return lb
	}
	return labelsByLanguage[bill.LanguageDE]
}

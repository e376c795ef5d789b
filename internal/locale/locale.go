package locale

import "github.com/yusufhadi/smartpos-backend/pkg/enums"

// Labels is the full terminal string catalog for one language. The JSON names
// are stable keys the terminal UI binds to.
type Labels struct {
	TerminalTitle   string `json:"terminal_title"`
	AddToBasket     string `json:"add_to_basket"`
	ScanOrType      string `json:"scan_or_type"`
	ScanDesc        string `json:"scan_desc"`
	AISearch        string `json:"ai_search"`
	AISearchDesc    string `json:"ai_search_desc"`
	AddBill         string `json:"add_bill"`
	AddBillDesc     string `json:"add_bill_desc"`
	Placeholder     string `json:"placeholder"`
	CheckButton     string `json:"check_btn"`
	Identifying     string `json:"identifying"`
	ReceiptTitle    string `json:"receipt_title"`
	Items           string `json:"items"`
	Subtotal        string `json:"subtotal"`
	VAT             string `json:"vat"`
	Total           string `json:"total"`
	PayButton       string `json:"pay_btn"`
	EmptyCart       string `json:"empty_cart"`
	Shortcuts       string `json:"shortcuts"`
	RecognitionFail string `json:"recognition_fail"`
}

// Bundle pairs a catalog with its writing direction so a renderer needs a
// single lookup per request.
type Bundle struct {
	Language  enums.Language      `json:"language"`
	Direction enums.TextDirection `json:"direction"`
	Labels    Labels              `json:"labels"`
}

var catalogs = map[enums.Language]Labels{
	enums.LanguageEnglish: {
		TerminalTitle:   "CARREFOUR DIGITAL TERMINAL",
		AddToBasket:     "Add to Basket",
		ScanOrType:      "Scan or Type",
		ScanDesc:        "Upload product photo or type the name.",
		AISearch:        "AI Search",
		AISearchDesc:    "Our AI finds real Carrefour prices.",
		AddBill:         "Add to Bill",
		AddBillDesc:     "Items appear on your live receipt.",
		Placeholder:     "Ex: 'Nescafé Gold' or 'Organic Banana'...",
		CheckButton:     "Check & Add Item",
		Identifying:     "AI Identifying...",
		ReceiptTitle:    "DIGITAL RECEIPT",
		Items:           "ITEMS",
		Subtotal:        "SUBTOTAL (VAT EXCL.)",
		VAT:             "VAT ESTIMATE (5%)",
		Total:           "TOTAL",
		PayButton:       "Pay Now",
		EmptyCart:       "Ready to scan items. The digital receipt will appear here.",
		Shortcuts:       "Hot Inventory Shortcuts",
		RecognitionFail: "AI could not identify this product. Try typing the name.",
	},
	enums.LanguageUrdu: {
		TerminalTitle:   "کیرفور ڈیجیٹل ٹرمینل",
		AddToBasket:     "ٹوکری میں شامل کریں",
		ScanOrType:      "اسکین یا ٹائپ کریں",
		ScanDesc:        "پروڈکٹ کی تصویر اپ لوڈ کریں یا نام لکھیں۔",
		AISearch:        "AI تلاش",
		AISearchDesc:    "ہمارا AI کیرفور کی اصل قیمتیں تلاش کرتا ہے۔",
		AddBill:         "بل میں شامل کریں",
		AddBillDesc:     "آئٹمز آپ کی لائیو رسید پر نظر آئیں گے۔",
		Placeholder:     "مثال: 'نسکیفے گولڈ' یا 'نامیاتی کیلا'...",
		CheckButton:     "آئٹم چیک کریں اور شامل کریں",
		Identifying:     "AI شناخت کر رہا ہے...",
		ReceiptTitle:    "ڈیجیٹل رسید",
		Items:           "آئٹمز",
		Subtotal:        "کل رقم (بغیر ٹیکس)",
		VAT:             "ٹیکس کا تخمینہ (5%)",
		Total:           "کل رقم",
		PayButton:       "ادائیگی کریں",
		EmptyCart:       "آئٹمز اسکین کرنے کے لیے تیار ہیں۔ ڈیجیٹل رسید یہاں نظر آئے گی۔",
		Shortcuts:       "مشہور اشیاء",
		RecognitionFail: "AI اس پروڈکٹ کو نہیں پہچان سکا۔ براہ کرم نام ٹائپ کریں۔",
	},
}

// For returns the bundle for a language, falling back to English when the
// language is unknown.
func For(lang enums.Language) Bundle {
	labels, ok := catalogs[lang]
	if !ok {
		lang = enums.LanguageEnglish
		labels = catalogs[lang]
	}
	return Bundle{
		Language:  lang,
		Direction: lang.Direction(),
		Labels:    labels,
	}
}

// Supported lists the languages the catalog covers, English first.
func Supported() []enums.Language {
	return []enums.Language{enums.LanguageEnglish, enums.LanguageUrdu}
}

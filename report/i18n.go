package report

import (
	"net/http"

	"golang.org/x/text/language"

	"kisansathi/models"
)

// Lang is a supported report language.
type Lang string

const (
	LangEN Lang = "en"
	LangHI Lang = "hi"
	LangMR Lang = "mr"
)

var matcher = language.NewMatcher([]language.Tag{
	language.English, // first entry is the fallback
	language.Hindi,
	language.Marathi,
})

// NegotiateLang picks the report language from the ?lang= query parameter
// when present, otherwise from the Accept-Language header. Defaults to
// English.
func NegotiateLang(r *http.Request) Lang {
	candidates := []string{}
	if q := r.URL.Query().Get("lang"); q != "" {
		candidates = append(candidates, q)
	}
	if al := r.Header.Get("Accept-Language"); al != "" {
		candidates = append(candidates, al)
	}
	tags := []language.Tag{}
	for _, c := range candidates {
		parsed, _, err := language.ParseAcceptLanguage(c)
		if err == nil {
			tags = append(tags, parsed...)
		}
	}
	_, idx, _ := matcher.Match(tags...)
	switch idx {
	case 1:
		return LangHI
	case 2:
		return LangMR
	}
	return LangEN
}

// labels follows the translation table the PDF template was built against.
var labels = map[string]map[Lang]string{
	"cropReport":       {LangEN: "Crop Report", LangHI: "फसल रिपोर्ट", LangMR: "पीक अहवाल"},
	"cropDetails":      {LangEN: "Crop Details", LangHI: "फसल विवरण", LangMR: "पीक तपशील"},
	"cropName":         {LangEN: "Crop Name", LangHI: "फसल का नाम", LangMR: "पीक नाव"},
	"startDate":        {LangEN: "Start Date", LangHI: "शुरुआत की तारीख", LangMR: "सुरुवातीची तारीख"},
	"endDate":          {LangEN: "End Date", LangHI: "समाप्ति की तारीख", LangMR: "समाप्तीची तारीख"},
	"landArea":         {LangEN: "Land Area", LangHI: "जमीन का क्षेत्रफल", LangMR: "जमिनीचे क्षेत्रफळ"},
	"duration":         {LangEN: "Duration", LangHI: "अवधि", LangMR: "कालावधी"},
	"months":           {LangEN: "months", LangHI: "महीने", LangMR: "महिने"},
	"status":           {LangEN: "Status", LangHI: "स्थिति", LangMR: "स्थिती"},
	"expenseDetails":   {LangEN: "Expense Details", LangHI: "खर्च का विवरण", LangMR: "खर्च तपशील"},
	"noExpenses":       {LangEN: "No expenses recorded", LangHI: "कोई खर्च दर्ज नहीं", LangMR: "कोणताही खर्च नोंदलेला नाही"},
	"saleDetails":      {LangEN: "Sale Details", LangHI: "बिक्री का विवरण", LangMR: "विक्री तपशील"},
	"date":             {LangEN: "Date", LangHI: "तारीख", LangMR: "तारीख"},
	"qty":              {LangEN: "Qty", LangHI: "मात्रा", LangMR: "प्रमाण"},
	"rate":             {LangEN: "Rate (Rs)", LangHI: "दर (₹)", LangMR: "दर (₹)"},
	"total":            {LangEN: "Total (Rs)", LangHI: "कुल (₹)", LangMR: "एकूण (₹)"},
	"subtotal":         {LangEN: "Subtotal", LangHI: "उप-योग", LangMR: "उपएकूण"},
	"financialSummary": {LangEN: "Financial Summary", LangHI: "वित्तीय सारांश", LangMR: "आर्थिक सारांश"},
	"totalCost":        {LangEN: "Total Cost", LangHI: "कुल खर्च", LangMR: "एकूण खर्च"},
	"totalIncome":      {LangEN: "Total Income", LangHI: "कुल आय", LangMR: "एकूण उत्पन्न"},
	"netProfit":        {LangEN: "Net Profit", LangHI: "शुद्ध लाभ", LangMR: "निव्वळ नफा"},
	"netLoss":          {LangEN: "Net Loss", LangHI: "शुद्ध हानि", LangMR: "निव्वळ तोटा"},
	"reportGenerated":  {LangEN: "Report Generated", LangHI: "रिपोर्ट तैयार", LangMR: "अहवाल तयार"},
	"notAvailable":     {LangEN: "Not Available", LangHI: "उपलब्ध नहीं", LangMR: "उपलब्ध नाही"},
}

var statusLabels = map[models.CropStatus]map[Lang]string{
	models.CropStatusActive:    {LangEN: "Active", LangHI: "चालू", LangMR: "सक्रिय"},
	models.CropStatusCompleted: {LangEN: "Completed", LangHI: "पूर्ण", LangMR: "पूर्ण"},
}

var landUnitLabels = map[models.LandUnit]map[Lang]string{
	models.UnitAcre:    {LangEN: "Acre", LangHI: "एकड़", LangMR: "एकर"},
	models.UnitBigha:   {LangEN: "Bigha", LangHI: "बीघा", LangMR: "बिघा"},
	models.UnitGuntha:  {LangEN: "Guntha", LangHI: "गुंठा", LangMR: "गुंठा"},
	models.UnitHectare: {LangEN: "Hectare", LangHI: "हेक्टेयर", LangMR: "हेक्टर"},
}

var weightUnitLabels = map[models.WeightUnit]map[Lang]string{
	models.WeightKg:      {LangEN: "kg", LangHI: "किलो", LangMR: "किलो"},
	models.WeightQuintal: {LangEN: "quintal", LangHI: "क्विंटल", LangMR: "क्विंटल"},
	models.WeightTon:     {LangEN: "ton", LangHI: "टन", LangMR: "टन"},
}

var categoryLabels = map[models.ExpenseCategory]map[Lang]string{
	models.CategoryLabour:     {LangEN: "Labour", LangHI: "मजदूरी", LangMR: "मजुरी"},
	models.CategoryTractor:    {LangEN: "Tractor", LangHI: "ट्रैक्टर", LangMR: "ट्रॅक्टर"},
	models.CategoryThreshing:  {LangEN: "Threshing", LangHI: "मड़ाई", LangMR: "मळणी"},
	models.CategoryFertilizer: {LangEN: "Fertilizer", LangHI: "खाद", LangMR: "खत"},
	models.CategorySeeds:      {LangEN: "Seeds", LangHI: "बीज", LangMR: "बियाणे"},
	models.CategoryIrrigation: {LangEN: "Irrigation", LangHI: "सिंचाई", LangMR: "सिंचन"},
	models.CategoryOther:      {LangEN: "Other", LangHI: "अन्य", LangMR: "इतर"},
}

// Label returns the localized label for key, falling back to English, then
// to the key itself.
func Label(key string, lang Lang) string {
	if byLang, ok := labels[key]; ok {
		if v, ok := byLang[lang]; ok {
			return v
		}
		return byLang[LangEN]
	}
	return key
}

// LabelSet returns every known label in the given language, for consumers
// that render the report client-side.
func LabelSet(lang Lang) map[string]string {
	out := make(map[string]string, len(labels))
	for key := range labels {
		out[key] = Label(key, lang)
	}
	return out
}

// StatusLabel localizes a crop status value.
func StatusLabel(s models.CropStatus, lang Lang) string {
	if byLang, ok := statusLabels[s]; ok {
		if v, ok := byLang[lang]; ok {
			return v
		}
		return byLang[LangEN]
	}
	return string(s)
}

// LandUnitLabel localizes a land unit value.
func LandUnitLabel(u models.LandUnit, lang Lang) string {
	if byLang, ok := landUnitLabels[u]; ok {
		if v, ok := byLang[lang]; ok {
			return v
		}
		return byLang[LangEN]
	}
	return string(u)
}

// WeightUnitLabel localizes a sale weight unit value.
func WeightUnitLabel(u models.WeightUnit, lang Lang) string {
	if byLang, ok := weightUnitLabels[u]; ok {
		if v, ok := byLang[lang]; ok {
			return v
		}
		return byLang[LangEN]
	}
	return string(u)
}

// CategoryLabel localizes an expense category value.
func CategoryLabel(c models.ExpenseCategory, lang Lang) string {
	if byLang, ok := categoryLabels[c]; ok {
		if v, ok := byLang[lang]; ok {
			return v
		}
		return byLang[LangEN]
	}
	return string(c)
}

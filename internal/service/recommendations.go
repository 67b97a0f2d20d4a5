package service

import "strings"

// visit preparation tips per specialty, keyed in lower case
var specialtyTips = map[string][]string{
	"cardiology": {
		"Avoid heavy meals 4-6 hours before your appointment",
		"Bring a list of current medications",
		"Wear comfortable, loose-fitting clothing",
		"Bring previous ECG or cardiac test reports if available",
	},
	"pediatrics": {
		"Bring your child's vaccination record",
		"List any allergies or current medications",
		"Bring a favorite toy or comfort item for your child",
		"Prepare a list of questions or concerns",
	},
	"dermatology": {
		"Avoid applying makeup or skincare products to affected areas",
		"Bring a list of skincare products you currently use",
		"Take photos of skin changes if they vary day to day",
		"Wear comfortable clothing for easy examination",
	},
	"orthopedics": {
		"Bring any recent X-rays or imaging reports",
		"Wear comfortable clothing and supportive shoes",
		"List activities that worsen or improve your symptoms",
		"Bring any braces or supports you currently use",
	},
	"neurology": {
		"Keep a symptom diary leading up to your appointment",
		"Bring a list of all medications and supplements",
		"Bring a family member who can provide additional information",
		"Prepare questions about your symptoms and concerns",
	},
	"ophthalmology": {
		"Bring your current eyeglasses or contact lenses",
		"Avoid wearing eye makeup on appointment day",
		"Bring a list of any eye medications you use",
		"Consider arranging transportation as eyes may be dilated",
	},
	"gynecology": {
		"Track your menstrual cycle before the appointment",
		"Prepare questions about reproductive health",
		"Bring a list of current medications",
		"Wear comfortable, easily removable clothing",
	},
	"psychiatry": {
		"Keep a mood diary for a few days before appointment",
		"List current medications and their effects",
		"Bring a support person if comfortable",
		"Prepare to discuss symptoms openly and honestly",
	},
	"general physician": {
		"Bring a list of all current medications and supplements",
		"Prepare a list of your symptoms and concerns",
		"Bring any relevant medical records or test results",
		"Be ready to discuss your medical history",
	},
	"ent (ear, nose, throat)": {
		"Avoid using nasal sprays or ear drops before the appointment unless instructed",
		"Prepare to describe your symptoms in detail (e.g., duration, severity)",
		"Bring any previous hearing test results or imaging scans",
		"Inform the doctor about any allergies",
	},
	"oncology": {
		"Bring all relevant medical records, including pathology reports and imaging scans",
		"Prepare a list of questions for the doctor",
		"Consider bringing a family member or friend for support and to take notes",
		"List all current medications, including over-the-counter drugs and supplements",
	},
}

// directory codes that name a specialty differently
var specialtyAliases = map[string]string{
	"general":          "general physician",
	"general medicine": "general physician",
	"ent":              "ent (ear, nose, throat)",
}

var defaultTips = []string{
	"Arrive 15 minutes early for your appointment",
	"Bring a valid ID and insurance card",
	"Prepare a list of current medications",
	"Write down questions you want to ask the doctor",
	"Bring any relevant medical records or test results",
}

// Recommendations returns the preparation tips for a specialty. Unknown
// specialties get the general list.
func Recommendations(specialty string) []string {
	key := strings.ToLower(strings.TrimSpace(specialty))
	if alias, ok := specialtyAliases[key]; ok {
		key = alias
	}
	tips, ok := specialtyTips[key]
	if !ok {
		tips = defaultTips
	}
	return append([]string(nil), tips...)
}

// Package triage answers free-text health questions from fixed knowledge
// tables. It never calls out to a model, so the same input always yields the
// same text.
package triage

import (
	"fmt"
	"strings"

	"github.com/pharmavault/backend/internal/vitals"
)

const disclaimer = "Remember, this is general information only. Your health and safety are important, so don't hesitate to seek professional medical advice when in doubt."

const mergedDoctorAdvice = "Please see a healthcare provider if you experience any of these symptoms severely or if they persist."

// GenerateMedicalResponse routes text to the vital signs analyzer when it
// carries readings, otherwise to symptom lookup, then to the fixed topic
// handlers.
func GenerateMedicalResponse(text string) string {
	if vitals.LooksLikeVitals(text) {
		return vitals.GenerateResponse(text)
	}

	input := strings.ToLower(strings.TrimSpace(text))

	matched := DetectSymptoms(input)
	switch len(matched) {
	case 0:
		return fallbackResponse(input)
	case 1:
		return formatSingle(matched[0])
	default:
		return formatMerged(matched)
	}
}

// DetectSymptoms returns every category with a keyword occurring in text, in
// table order. Matching is case-insensitive substring search.
func DetectSymptoms(text string) []Symptom {
	input := strings.ToLower(text)
	var matched []Symptom
	for _, s := range Symptoms {
		for _, kw := range s.Keywords {
			if strings.Contains(input, kw) {
				matched = append(matched, s)
				break
			}
		}
	}
	return matched
}

func formatSingle(s Symptom) string {
	return formatAdvisory(s.Name, s.Causes, s.Medicines, s.Precautions,
		fmt.Sprintf("Please see a healthcare provider if you experience %s.", s.DoctorAdvice))
}

func formatMerged(symptoms []Symptom) string {
	names := make([]string, 0, len(symptoms))
	var causes, medicines, precautions orderedSet
	for _, s := range symptoms {
		names = append(names, s.Name)
		causes.add(s.Causes...)
		medicines.add(s.Medicines...)
		precautions.add(s.Precautions...)
	}

	return formatAdvisory(strings.Join(names, " and "),
		causes.first(maxMergedCauses),
		medicines.first(maxMergedMedicines),
		precautions.first(maxMergedPrecautions),
		mergedDoctorAdvice)
}

func formatAdvisory(title string, causes, medicines, precautions []string, doctor string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** can have several common causes:\n\n", capitalize(title))
	writeSection(&b, "Possible causes", causes)
	writeSection(&b, "Common medicines that may help", medicines)
	writeSection(&b, "Simple precautions and home remedies", precautions)
	b.WriteString("**When to consult a doctor:**\n")
	b.WriteString(doctor)
	b.WriteString("\n\n")
	b.WriteString(disclaimer)
	return b.String()
}

func writeSection(b *strings.Builder, heading string, items []string) {
	fmt.Fprintf(b, "**%s:**\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "• %s\n", item)
	}
	b.WriteString("\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// orderedSet keeps first-seen order while dropping duplicates.
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func (o *orderedSet) add(values ...string) {
	if o.seen == nil {
		o.seen = make(map[string]struct{})
	}
	for _, v := range values {
		if _, ok := o.seen[v]; ok {
			continue
		}
		o.seen[v] = struct{}{}
		o.items = append(o.items, v)
	}
}

func (o *orderedSet) first(n int) []string {
	if len(o.items) <= n {
		return o.items
	}
	return o.items[:n]
}

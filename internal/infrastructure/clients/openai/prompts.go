package openai

import (
	"fmt"
	"strings"

	"github.com/pharmavault/backend/internal/domain/entities"
)

const assistantSystemPrompt = `You are PharmaVault Health Assistant, a professional and empathetic healthcare AI.

Guidelines:
1. Use the provided context to answer medicine-related questions.
2. For general health queries (like "I have a cold"), provide helpful, non-diagnostic advice.
3. ALWAYS include a medical disclaimer.
4. If user symptoms sound serious, recommend seeing a doctor immediately.
5. Keep responses concise, structured (using bullet points), and easy to read.`

const noContextLine = "No specific medicine details available in database for this query."

// buildMedicineContext renders one block per medicine for the prompt.
func buildMedicineContext(medicines []*entities.Medicine) string {
	if len(medicines) == 0 {
		return noContextLine
	}

	var b strings.Builder
	for i, m := range medicines {
		if m == nil {
			continue
		}
		if i > 0 {
			b.WriteString("\n")
		}
		stock := "Out of Stock"
		if m.InStock {
			stock = "In Stock"
		}
		prescription := "Not required"
		if m.PrescriptionRequired {
			prescription = "Required"
		}
		fmt.Fprintf(&b, "- Medicine: %s (%s)\n", m.Name, m.GenericName)
		fmt.Fprintf(&b, "  Category: %s\n", m.Category)
		fmt.Fprintf(&b, "  Description: %s\n", m.Description)
		fmt.Fprintf(&b, "  Used For: %s\n", strings.Join(m.UsedFor, ", "))
		fmt.Fprintf(&b, "  Dosage: %s\n", m.Dosage)
		fmt.Fprintf(&b, "  Side Effects: %s\n", strings.Join(m.SideEffects, ", "))
		fmt.Fprintf(&b, "  Contraindications: %s\n", strings.Join(m.Contraindications, ", "))
		fmt.Fprintf(&b, "  Prescription: %s\n", prescription)
		if m.PregnancyCategory != "" {
			fmt.Fprintf(&b, "  Pregnancy Category: %s\n", m.PregnancyCategory)
		}
		fmt.Fprintf(&b, "  Price: ₹%.2f\n", m.Price)
		fmt.Fprintf(&b, "  Status: %s\n", stock)
	}
	return b.String()
}

func buildUserPrompt(query string, medicines []*entities.Medicine) string {
	return fmt.Sprintf("Context from Verified Medicine Database:\n%s\n\nUser Query: %s", buildMedicineContext(medicines), query)
}

package triage

import "strings"

var (
	greetings       = []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening", "greetings", "howdy"}
	howAreYouPhrase = []string{"how are you", "how are you doing", "how's it going", "what's up", "whats up"}
	thanksPhrases   = []string{"thanks", "thank you", "appreciate it", "thanks a lot"}
	goodbyePhrases  = []string{"bye", "goodbye", "see you", "farewell", "take care"}
)

const medicineSafetyResponse = `**Medicine Safety Guidelines:**

**General precautions:**
• Always read labels and follow dosage instructions carefully
• Check expiration dates before taking any medicine
• Be aware of potential drug interactions with other medications
• Don't exceed recommended doses
• Store medicines properly in a cool, dry place

**Before taking any medicine:**
• Consult with a pharmacist or doctor if you're unsure
• Inform healthcare providers about all medicines you're currently taking
• Check for known allergies or previous adverse reactions
• Consider your current medical conditions and health status

**When to consult a healthcare professional:**
Always consult a doctor or pharmacist before starting new medications, especially if you have chronic conditions, are pregnant or breastfeeding, or are taking other medicines.

` + disclaimer

const emergencyResponse = `**When to Seek Emergency Medical Care:**

**Call emergency services immediately for:**
• Difficulty breathing or shortness of breath
• Chest pain or pressure
• Severe allergic reactions (swelling, difficulty breathing)
• Loss of consciousness or fainting
• Severe bleeding that won't stop
• Signs of stroke (face drooping, arm weakness, speech difficulty)
• Severe burns or injuries

**Go to urgent care or ER for:**
• High fever with severe symptoms
• Persistent vomiting or signs of dehydration
• Severe abdominal pain
• Head injuries or severe headaches
• Deep cuts requiring stitches

**General health emergencies:**
If you're ever unsure whether a situation is an emergency, it's always better to err on the side of caution and seek immediate medical attention.

` + disclaimer

const greetingResponse = `Hello! I'm your PharmaVault Health Assistant. I'm here to help you with:

• Medicine information and recommendations
• Symptoms analysis and health guidance
• Vital signs monitoring and interpretation
• Prescription assistance
• General health questions

What can I help you with today?`

const howAreYouResponse = `I'm doing great, thank you for asking! I'm here and ready to help you with any health or medicine-related questions.

What would you like to know about today? I can help with:
• Symptoms and health concerns
• Medicine information
• Vital signs analysis
• General health advice`

const thanksResponse = `You're very welcome! I'm happy to help. If you have any other health questions or need medicine information, feel free to ask anytime.

Stay healthy!`

const goodbyeResponse = `Goodbye! Take care of your health. Feel free to come back anytime you have questions about medicines or health concerns.

Stay well!`

// CapabilityOverview is the answer when nothing more specific matches.
const CapabilityOverview = `Thank you for your health question. I'm here to help with information about common symptoms, vital signs analysis, and general health guidance.

**I can help you with:**
• Common symptoms like headaches, fever, cough, sore throat
• Vital signs analysis (heart rate, blood pressure, temperature, etc.)
• General information about over-the-counter medicines
• Simple home remedies and precautions
• Guidance on when to see a doctor
• Basic health and wellness questions

**For the best assistance, try describing:**
• Your specific symptoms or vital signs
• How long you've been experiencing them
• Any other related concerns

**Vital signs format example:**
Heart rate: 75 bpm, Blood pressure: 120/80 mmHg, Temperature: 98.6°F

**Important reminders:**
• This information is for general guidance only
• Always consult healthcare professionals for serious symptoms
• Don't delay seeking medical care if you're concerned
• Keep emergency numbers handy for urgent situations

Feel free to ask about any specific symptoms, vital signs, or health concerns you may have!

` + disclaimer

// fallbackResponse handles input with no symptom match. input is already
// lower-cased and trimmed.
func fallbackResponse(input string) string {
	if strings.Contains(input, "medicine") && (strings.Contains(input, "safe") || strings.Contains(input, "take")) {
		return medicineSafetyResponse
	}
	if containsAny(input, "emergency", "urgent", "serious") {
		return emergencyResponse
	}
	if reply, ok := smallTalk(input); ok {
		return reply
	}
	return CapabilityOverview
}

func smallTalk(input string) (string, bool) {
	for _, g := range greetings {
		if input == g || strings.HasPrefix(input, g+" ") || strings.HasPrefix(input, g+"!") {
			return greetingResponse, true
		}
	}
	switch {
	case containsAny(input, howAreYouPhrase...):
		return howAreYouResponse, true
	case containsAny(input, thanksPhrases...):
		return thanksResponse, true
	case containsAny(input, goodbyePhrases...):
		return goodbyeResponse, true
	}
	return "", false
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

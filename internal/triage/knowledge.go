package triage

// Symptom is a fixed knowledge record for one symptom category.
type Symptom struct {
	Key          string
	Name         string
	Keywords     []string
	Causes       []string
	Medicines    []string
	Precautions  []string
	DoctorAdvice string
}

// Symptoms lists every category in detection order.
var Symptoms = []Symptom{
	{
		Key:  "headache",
		Name: "headache",
		Keywords: []string{
			"headache", "head pain", "head ache", "migraine", "head hurts",
			"pain in head", "head throbbing", "head pounding",
		},
		Causes: []string{
			"Dehydration or not drinking enough water",
			"Stress, tension, or anxiety",
			"Lack of sleep or poor sleep quality",
			"Eye strain from screens or bright lights",
			"Sinus congestion or allergies",
			"Low blood sugar or skipping meals",
			"Caffeine withdrawal",
			"Poor posture or neck tension",
		},
		Medicines: []string{
			"Paracetamol (acetaminophen) - safe and effective for most people",
			"Ibuprofen - helps with pain and inflammation",
			"Aspirin - for adults only, not for children",
			"Plenty of water - often the best first treatment",
		},
		Precautions: []string{
			"Rest in a quiet, dark room",
			"Apply a cold compress to your forehead",
			"Drink water slowly and steadily",
			"Try gentle neck and shoulder stretches",
			"Avoid bright lights and loud noises",
			"Get some fresh air if possible",
		},
		DoctorAdvice: "severe headache, persistent pain lasting more than 2 days, headache with fever, vision changes, confusion, or neck stiffness",
	},
	{
		Key:  "fever",
		Name: "fever",
		Keywords: []string{
			"fever", "high temperature", "hot", "burning up", "feverish",
			"temperature", "chills", "sweating",
		},
		Causes: []string{
			"Viral infections like cold or flu",
			"Bacterial infections",
			"Inflammatory conditions",
			"Heat exhaustion or dehydration",
			"Some medications or vaccines",
			"Autoimmune conditions",
		},
		Medicines: []string{
			"Paracetamol - effective fever reducer and safe for most ages",
			"Ibuprofen - reduces fever and inflammation",
			"Plenty of fluids to prevent dehydration",
			"Oral rehydration solutions if needed",
		},
		Precautions: []string{
			"Rest and get plenty of sleep",
			"Drink lots of fluids (water, herbal teas, clear broths)",
			"Wear light, breathable clothing",
			"Use cool compresses on forehead and wrists",
			"Take lukewarm baths or showers",
			"Monitor temperature regularly",
		},
		DoctorAdvice: "fever above 103°F (39.4°C), persistent fever for more than 3 days, difficulty breathing, severe headache, chest pain, or signs of dehydration",
	},
	{
		Key:  "cough",
		Name: "cough",
		Keywords: []string{
			"cough", "coughing", "throat clearing", "hacking", "dry cough",
			"wet cough", "persistent cough",
		},
		Causes: []string{
			"Common cold or flu virus",
			"Allergies or environmental irritants",
			"Dry air or seasonal changes",
			"Throat irritation from talking or singing",
			"Acid reflux or heartburn",
			"Respiratory infections",
		},
		Medicines: []string{
			"Cough drops or throat lozenges for soothing relief",
			"Honey (natural cough suppressant - not for children under 1 year)",
			"Cough syrups with dextromethorphan for dry coughs",
			"Expectorants to help loosen mucus",
		},
		Precautions: []string{
			"Stay well hydrated with warm liquids",
			"Use a humidifier or breathe steam from hot shower",
			"Gargle with warm salt water",
			"Avoid smoke, strong perfumes, and irritants",
			"Sleep with your head elevated",
			"Rest your voice when possible",
		},
		DoctorAdvice: "persistent cough lasting more than 2 weeks, coughing up blood, high fever with cough, difficulty breathing, or chest pain",
	},
	{
		Key:  "soreThroat",
		Name: "sore throat",
		Keywords: []string{
			"sore throat", "throat pain", "throat hurts", "scratchy throat",
			"throat ache", "swollen throat", "throat infection",
		},
		Causes: []string{
			"Viral infections (most common cause)",
			"Bacterial infections like strep throat",
			"Allergies or postnasal drip",
			"Dry air or mouth breathing",
			"Acid reflux",
			"Overuse of voice or shouting",
		},
		Medicines: []string{
			"Throat lozenges or hard candies for temporary relief",
			"Paracetamol or ibuprofen for pain and inflammation",
			"Throat sprays with numbing agents",
			"Antiseptic gargles or mouthwashes",
		},
		Precautions: []string{
			"Gargle with warm salt water several times daily",
			"Drink warm fluids like tea with honey",
			"Use a humidifier to add moisture to air",
			"Avoid irritants like cigarette smoke",
			"Rest your voice and avoid whispering",
			"Stay hydrated with plenty of fluids",
		},
		DoctorAdvice: "severe throat pain, difficulty swallowing, high fever, white patches on throat, swollen lymph nodes, or symptoms lasting more than a week",
	},
	{
		Key:  "stomachPain",
		Name: "stomach pain",
		Keywords: []string{
			"stomach pain", "stomach ache", "belly pain", "abdominal pain",
			"tummy ache", "stomach hurts", "gastric pain", "indigestion",
		},
		Causes: []string{
			"Indigestion from eating too much or too quickly",
			"Gas, bloating, or trapped wind",
			"Food poisoning or stomach bug",
			"Stress, anxiety, or emotional upset",
			"Acid reflux or heartburn",
			"Menstrual cramps (for women)",
			"Constipation or digestive issues",
		},
		Medicines: []string{
			"Antacids for acid-related stomach discomfort",
			"Simethicone (Gas-X) for gas and bloating",
			"Loperamide for diarrhea (if present)",
			"Probiotics to support digestive health",
		},
		Precautions: []string{
			"Eat smaller, more frequent meals",
			"Avoid spicy, fatty, or very acidic foods",
			"Stay hydrated with clear fluids",
			"Apply a warm heating pad to your abdomen",
			"Try gentle walking to aid digestion",
			"Practice relaxation techniques if stress-related",
		},
		DoctorAdvice: "severe abdominal pain, persistent vomiting, signs of dehydration, high fever, blood in stool, or pain that worsens over time",
	},
	{
		Key:  "dizziness",
		Name: "dizziness",
		Keywords: []string{
			"dizzy", "dizziness", "lightheaded", "vertigo", "spinning",
			"balance problems", "unsteady",
		},
		Causes: []string{
			"Dehydration or low blood sugar",
			"Inner ear problems or balance disorders",
			"Low blood pressure or sudden position changes",
			"Medication side effects",
			"Anxiety, stress, or panic attacks",
			"Anemia or low iron levels",
			"Vestibular disorders",
		},
		Medicines: []string{
			"Oral rehydration solutions if dehydrated",
			"Glucose tablets or sweet drinks for low blood sugar",
			"Motion sickness medications if travel-related",
			"Iron supplements if anemic (consult doctor first)",
		},
		Precautions: []string{
			"Sit or lie down immediately when feeling dizzy",
			"Move slowly and avoid sudden position changes",
			"Stay well hydrated throughout the day",
			"Eat regular, balanced meals",
			"Avoid driving or operating machinery when dizzy",
			"Get up slowly from sitting or lying positions",
		},
		DoctorAdvice: "frequent or severe dizziness, dizziness with chest pain or shortness of breath, fainting episodes, severe headache with dizziness, or if it significantly affects daily activities",
	},
	{
		Key:  "nausea",
		Name: "nausea",
		Keywords: []string{
			"nausea", "nauseous", "sick to stomach", "queasy", "feel like vomiting",
			"morning sickness", "motion sickness",
		},
		Causes: []string{
			"Stomach flu or food poisoning",
			"Motion sickness or travel",
			"Pregnancy (morning sickness)",
			"Medication side effects",
			"Anxiety or stress",
			"Overeating or eating too quickly",
			"Migraine headaches",
		},
		Medicines: []string{
			"Ginger supplements or ginger tea (natural anti-nausea)",
			"Dramamine for motion sickness",
			"Antacids if related to stomach acid",
			"Oral rehydration solutions to prevent dehydration",
		},
		Precautions: []string{
			"Eat small, frequent meals instead of large ones",
			"Choose bland foods like crackers, toast, or rice",
			"Avoid strong smells and greasy foods",
			"Stay hydrated with small sips of clear fluids",
			"Get fresh air and avoid stuffy environments",
			"Rest in a comfortable position",
		},
		DoctorAdvice: "persistent vomiting, signs of dehydration, severe abdominal pain, high fever, or if you cannot keep fluids down for more than 24 hours",
	},
	{
		Key:  "fatigue",
		Name: "fatigue",
		Keywords: []string{
			"tired", "fatigue", "exhausted", "weak", "no energy", "sleepy",
			"worn out", "drained",
		},
		Causes: []string{
			"Lack of quality sleep or sleep disorders",
			"Stress, anxiety, or depression",
			"Poor diet or nutritional deficiencies",
			"Dehydration or not drinking enough water",
			"Sedentary lifestyle or lack of exercise",
			"Underlying medical conditions",
			"Medication side effects",
		},
		Medicines: []string{
			"Multivitamins if nutritional deficiency suspected",
			"Iron supplements if anemic (consult doctor first)",
			"Vitamin D supplements if deficient",
			"B-complex vitamins for energy support",
		},
		Precautions: []string{
			"Establish a regular sleep schedule (7-9 hours nightly)",
			"Eat a balanced diet with regular meals",
			"Stay hydrated throughout the day",
			"Exercise regularly, even light walking helps",
			"Manage stress through relaxation techniques",
			"Limit caffeine and alcohol consumption",
		},
		DoctorAdvice: "persistent fatigue lasting more than 2 weeks, fatigue with unexplained weight loss, severe fatigue affecting daily activities, or fatigue with other concerning symptoms",
	},
	{
		Key:  "backPain",
		Name: "back pain",
		Keywords: []string{
			"back pain", "backache", "lower back pain", "spine pain",
			"back hurts", "back ache",
		},
		Causes: []string{
			"Poor posture or prolonged sitting",
			"Muscle strain from lifting or sudden movements",
			"Sleeping in awkward positions",
			"Stress and muscle tension",
			"Lack of regular exercise",
			"Herniated disc or spinal issues",
			"Arthritis or joint problems",
		},
		Medicines: []string{
			"Ibuprofen or naproxen for inflammation and pain",
			"Paracetamol for pain relief",
			"Topical pain relief creams or gels",
			"Muscle relaxants (prescription only)",
		},
		Precautions: []string{
			"Apply ice for first 24-48 hours, then heat",
			"Gentle stretching and movement (avoid bed rest)",
			"Maintain good posture when sitting and standing",
			"Use proper lifting techniques",
			"Sleep on a supportive mattress",
			"Consider gentle yoga or physical therapy exercises",
		},
		DoctorAdvice: "severe back pain, pain radiating down legs, numbness or tingling, loss of bladder control, or pain following an injury",
	},
	{
		Key:  "jointPain",
		Name: "joint pain",
		Keywords: []string{
			"joint pain", "arthritis", "knee pain", "shoulder pain",
			"joint ache", "stiff joints", "joint stiffness",
		},
		Causes: []string{
			"Arthritis (osteoarthritis or rheumatoid)",
			"Overuse or repetitive strain",
			"Injury or trauma to the joint",
			"Autoimmune conditions",
			"Weather changes (barometric pressure)",
			"Age-related wear and tear",
			"Inflammatory conditions",
		},
		Medicines: []string{
			"Ibuprofen or naproxen for inflammation",
			"Paracetamol for pain relief",
			"Topical anti-inflammatory creams",
			"Glucosamine and chondroitin supplements",
		},
		Precautions: []string{
			"Apply ice for acute pain, heat for stiffness",
			"Gentle range-of-motion exercises",
			"Maintain a healthy weight to reduce joint stress",
			"Use supportive devices if needed",
			"Avoid activities that worsen pain",
			"Consider low-impact exercises like swimming",
		},
		DoctorAdvice: "severe joint pain, significant swelling, joint deformity, inability to use the joint, or pain with fever",
	},
	{
		Key:  "skinIssues",
		Name: "skin issues",
		Keywords: []string{
			"rash", "skin rash", "itchy skin", "skin irritation", "eczema",
			"dry skin", "skin allergy", "hives",
		},
		Causes: []string{
			"Allergic reactions to foods, products, or environment",
			"Eczema or dermatitis",
			"Dry skin or weather changes",
			"Insect bites or stings",
			"Contact with irritants",
			"Stress or hormonal changes",
			"Fungal or bacterial infections",
		},
		Medicines: []string{
			"Antihistamines for allergic reactions and itching",
			"Hydrocortisone cream for inflammation",
			"Moisturizing lotions and creams",
			"Calamine lotion for soothing relief",
		},
		Precautions: []string{
			"Avoid known triggers and irritants",
			"Keep skin clean and moisturized",
			"Use gentle, fragrance-free products",
			"Avoid scratching affected areas",
			"Wear loose, breathable clothing",
			"Take cool baths with oatmeal or baking soda",
		},
		DoctorAdvice: "severe rash, signs of infection, rash with fever, difficulty breathing with rash, or rash that doesn't improve with treatment",
	},
	{
		Key:  "sleepIssues",
		Name: "sleep issues",
		Keywords: []string{
			"insomnia", "can't sleep", "trouble sleeping", "sleep problems",
			"difficulty sleeping", "restless sleep",
		},
		Causes: []string{
			"Stress, anxiety, or racing thoughts",
			"Poor sleep hygiene or irregular schedule",
			"Caffeine or alcohol consumption",
			"Screen time before bed",
			"Uncomfortable sleep environment",
			"Medical conditions or medications",
			"Shift work or jet lag",
		},
		Medicines: []string{
			"Melatonin supplements (natural sleep aid)",
			"Herbal teas like chamomile or valerian",
			"Magnesium supplements for relaxation",
			"Over-the-counter sleep aids (short-term use only)",
		},
		Precautions: []string{
			"Establish a consistent bedtime routine",
			"Create a cool, dark, quiet sleep environment",
			"Avoid screens 1 hour before bedtime",
			"Limit caffeine after 2 PM",
			"Exercise regularly, but not close to bedtime",
			"Practice relaxation techniques like deep breathing",
		},
		DoctorAdvice: "chronic insomnia lasting more than 3 weeks, sleep problems affecting daily life, loud snoring with breathing pauses, or excessive daytime sleepiness",
	},
	{
		Key:  "anxiety",
		Name: "anxiety",
		Keywords: []string{
			"anxiety", "anxious", "panic", "stress", "worried", "nervous",
			"panic attack", "restless",
		},
		Causes: []string{
			"Stress from work, relationships, or life changes",
			"Genetic predisposition or family history",
			"Traumatic experiences or PTSD",
			"Medical conditions or hormonal changes",
			"Caffeine or substance use",
			"Perfectionism or overthinking",
			"Social situations or phobias",
		},
		Medicines: []string{
			"Herbal supplements like chamomile or passionflower",
			"Magnesium supplements for relaxation",
			"L-theanine for calm focus",
			"Prescription medications (consult doctor)",
		},
		Precautions: []string{
			"Practice deep breathing exercises",
			"Try meditation or mindfulness techniques",
			"Regular exercise to reduce stress hormones",
			"Limit caffeine and alcohol",
			"Maintain social connections and support",
			"Get adequate sleep and nutrition",
		},
		DoctorAdvice: "severe anxiety affecting daily life, panic attacks, thoughts of self-harm, anxiety with depression, or if anxiety interferes with work or relationships",
	},
	{
		Key:  "coldFlu",
		Name: "cold or flu",
		Keywords: []string{
			"cold", "flu", "runny nose", "stuffy nose", "congestion",
			"sneezing", "blocked nose",
		},
		Causes: []string{
			"Viral infections (rhinovirus, influenza)",
			"Weakened immune system",
			"Exposure to infected individuals",
			"Seasonal changes and weather",
			"Stress or lack of sleep",
			"Poor nutrition or dehydration",
			"Crowded environments",
		},
		Medicines: []string{
			"Paracetamol or ibuprofen for aches and fever",
			"Decongestants for stuffy nose",
			"Cough suppressants or expectorants",
			"Throat lozenges for sore throat",
			"Saline nasal sprays for congestion",
		},
		Precautions: []string{
			"Get plenty of rest and sleep",
			"Stay hydrated with warm fluids",
			"Use a humidifier or breathe steam",
			"Gargle with salt water for sore throat",
			"Eat nutritious foods to support immunity",
			"Wash hands frequently to prevent spread",
		},
		DoctorAdvice: "high fever lasting more than 3 days, difficulty breathing, severe headache, chest pain, or if symptoms worsen after initial improvement",
	},
}

// Caps applied when several categories are merged into one answer.
const (
	maxMergedCauses      = 8
	maxMergedMedicines   = 6
	maxMergedPrecautions = 8
)

package models

const (
	SymptomCategoryPhysical  = "physical"
	SymptomCategoryEmotional = "emotional"
	SymptomCategoryFlow      = "flow"
)

type SymptomOption struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Category string `json:"category"`
}

type AdviceCategory struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type HealthcareLocation struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Phone       string      `json:"phone"`
	Type        string      `json:"type"`
	Distance    string      `json:"distance"`
	Coordinates Coordinates `json:"coordinates"`
}

func DefaultSymptomOptions() []SymptomOption {
	return []SymptomOption{
		{ID: "cramps", Label: "Cramps", Category: SymptomCategoryPhysical},
		{ID: "headache", Label: "Headache", Category: SymptomCategoryPhysical},
		{ID: "backache", Label: "Backache", Category: SymptomCategoryPhysical},
		{ID: "fatigue", Label: "Fatigue", Category: SymptomCategoryPhysical},
		{ID: "bloating", Label: "Bloating", Category: SymptomCategoryPhysical},
		{ID: "breastTenderness", Label: "Breast Tenderness", Category: SymptomCategoryPhysical},
		{ID: "acne", Label: "Acne", Category: SymptomCategoryPhysical},
		{ID: "cravings", Label: "Cravings", Category: SymptomCategoryPhysical},
		{ID: "insomnia", Label: "Insomnia", Category: SymptomCategoryPhysical},
		{ID: "nausea", Label: "Nausea", Category: SymptomCategoryPhysical},
		{ID: "mood_swings", Label: "Mood Swings", Category: SymptomCategoryEmotional},
		{ID: "anxiety", Label: "Anxiety", Category: SymptomCategoryEmotional},
		{ID: "irritability", Label: "Irritability", Category: SymptomCategoryEmotional},
		{ID: "depression", Label: "Depression", Category: SymptomCategoryEmotional},
		{ID: "stress", Label: "Stress", Category: SymptomCategoryEmotional},
		{ID: "spotting", Label: "Spotting", Category: SymptomCategoryFlow},
		{ID: "light", Label: "Light Flow", Category: SymptomCategoryFlow},
		{ID: "medium", Label: "Medium Flow", Category: SymptomCategoryFlow},
		{ID: "heavy", Label: "Heavy Flow", Category: SymptomCategoryFlow},
	}
}

func DefaultAdviceCategories() []AdviceCategory {
	return []AdviceCategory{
		{
			ID:          "period",
			Title:       "Period Management",
			Icon:        "droplet",
			Color:       "bg-app-blush",
			Description: "Tips for managing period symptoms and taking care of yourself during menstruation.",
		},
		{
			ID:          "fertility",
			Title:       "Fertility & Ovulation",
			Icon:        "heart",
			Color:       "bg-app-teal",
			Description: "Understanding your fertile window and optimizing reproductive health.",
		},
		{
			ID:          "pregnancy",
			Title:       "Pregnancy Health",
			Icon:        "baby",
			Color:       "bg-app-peach",
			Description: "Health tips and information for a healthy pregnancy and prenatal care.",
		},
		{
			ID:          "lifestyle",
			Title:       "Lifestyle & Wellness",
			Icon:        "activity",
			Color:       "bg-app-lavender",
			Description: "General wellness advice for reproductive health and hormone balance.",
		},
	}
}

// DefaultHealthcareLocations is sample directory data, not a live lookup.
func DefaultHealthcareLocations() []HealthcareLocation {
	return []HealthcareLocation{
		{
			ID:          1,
			Name:        "Women's Health Center",
			Address:     "123 Main Street, Anytown",
			Phone:       "(555) 123-4567",
			Type:        "Clinic",
			Distance:    "0.8 miles",
			Coordinates: Coordinates{Lat: 40.7128, Lng: -74.006},
		},
		{
			ID:          2,
			Name:        "Memorial Hospital",
			Address:     "456 Oak Avenue, Anytown",
			Phone:       "(555) 987-6543",
			Type:        "Hospital",
			Distance:    "1.2 miles",
			Coordinates: Coordinates{Lat: 40.7148, Lng: -74.013},
		},
		{
			ID:          3,
			Name:        "Community Healthcare",
			Address:     "789 Elm Street, Anytown",
			Phone:       "(555) 456-7890",
			Type:        "Clinic",
			Distance:    "1.5 miles",
			Coordinates: Coordinates{Lat: 40.7110, Lng: -74.009},
		},
		{
			ID:          4,
			Name:        "University Medical Center",
			Address:     "101 College Road, Anytown",
			Phone:       "(555) 234-5678",
			Type:        "Hospital",
			Distance:    "2.3 miles",
			Coordinates: Coordinates{Lat: 40.7180, Lng: -74.001},
		},
		{
			ID:          5,
			Name:        "Riverside Clinic",
			Address:     "222 River Road, Anytown",
			Phone:       "(555) 345-6789",
			Type:        "Clinic",
			Distance:    "3.0 miles",
			Coordinates: Coordinates{Lat: 40.7090, Lng: -74.018},
		},
	}
}

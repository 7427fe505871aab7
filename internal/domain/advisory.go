package domain

// PesticideRecommendation describes one recommended pesticide treatment.
type PesticideRecommendation struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
}

// DiseaseProfile is a known crop disease with its treatment guidance.
type DiseaseProfile struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Treatments  []string                  `json:"treatments"`
	Pesticides  []PesticideRecommendation `json:"pesticides"`
	Prevention  []string                  `json:"prevention"`
}

// DiseaseDiagnosis is the result of scanning a crop image.
type DiseaseDiagnosis struct {
	DiseaseType string                    `json:"disease_type"`
	Description string                    `json:"description"`
	Confidence  string                    `json:"confidence"`
	Treatments  []string                  `json:"treatments"`
	Pesticides  []PesticideRecommendation `json:"pesticide_recommendations"`
	Prevention  []string                  `json:"prevention_tips"`
}

// DBTStatus is the outcome of a Direct Benefit Transfer linkage check.
type DBTStatus struct {
	Linked  bool   `json:"linked"`
	Message string `json:"message"`
}

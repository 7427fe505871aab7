package domain

// CropGuide is the full 16-point cultivation guide for a crop.
type CropGuide struct {
	Title                   string `json:"title"`
	IdentityContext         string `json:"identity_context"`
	SoilRequirements        string `json:"soil_requirements"`
	ClimateRequirements     string `json:"climate_requirements"`
	WaterIrrigationNeeds    string `json:"water_irrigation_needs"`
	Varieties               string `json:"varieties"`
	SeedSelectionSowing     string `json:"seed_selection_sowing"`
	NutrientManagement      string `json:"nutrient_management"`
	SeasonOfCultivation     string `json:"season_of_cultivation"`
	LandPreparation         string `json:"land_preparation"`
	ProcessOfCultivation    string `json:"process_of_cultivation"`
	OrganicFarmingPractices string `json:"organic_farming_practices"`
	HarvestingStorage       string `json:"harvesting_storage"`
	EstimatedCost           string `json:"estimated_cost"`
	LocationsOfCultivation  string `json:"locations_of_cultivation"`
	PestsAffecting          string `json:"pests_affecting"`
	PestControlMeasures     string `json:"pest_control_measures"`
}

// PestGuide is the condensed 5-point pest management view derived from a CropGuide.
type PestGuide struct {
	Title              string `json:"title"`
	Identification     string `json:"identification"`
	Mixtures           string `json:"mixtures"`
	ApplicationProcess string `json:"application_process"`
	SafetyPrecautions  string `json:"safety_precautions"`
	Recommendations    string `json:"recommendations"`
}

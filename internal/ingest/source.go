package ingest

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/propai/catalyst-cli/internal/model"
)

// SourceFormat names the wire shape a source serves.
type SourceFormat string

const (
	FormatCSV  SourceFormat = "csv"
	FormatJSON SourceFormat = "json"
	FormatXLSX SourceFormat = "xlsx"
)

// SourceConfig describes one external economic-development data source:
// where to fetch it and which field names carry each catalyst attribute.
// Pure data, no behavior; adapters stay independent and failure-isolated.
type SourceConfig struct {
	State  string       `yaml:"state"`
	Name   string       `yaml:"name"`
	URL    string       `yaml:"url"`
	Format SourceFormat `yaml:"format"`

	// Encoding overrides the payload charset for CSV sources; "latin1"
	// is the only non-default value state portals have needed so far.
	Encoding string `yaml:"encoding,omitempty"`

	CapexField  string `yaml:"capex_field"`
	JobsField   string `yaml:"jobs_field"`
	LatField    string `yaml:"lat_field"`
	LngField    string `yaml:"lng_field"`
	YearField   string `yaml:"year_field"`
	NameField   string `yaml:"name_field"`
	SectorField string `yaml:"sector_field,omitempty"`

	DefaultType model.CatalystType `yaml:"default_type,omitempty"`
}

// DefaultSources returns the built-in state incentive-program adapters.
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{
			State:       "OH",
			Name:        "Ohio Tax Credit Projects",
			URL:         "https://development.ohio.gov/static/business/Excel/All_Approved_TCA_Projects.csv",
			Format:      FormatCSV,
			CapexField:  "Capital_Investment",
			JobsField:   "Jobs_Created",
			LatField:    "Latitude",
			LngField:    "Longitude",
			YearField:   "Year",
			NameField:   "Project_Name",
			SectorField: "NAICS",
			DefaultType: model.TypeIndustrialMegaproject,
		},
		{
			State:       "GA",
			Name:        "Georgia Announced Projects 2020-2023",
			URL:         "https://www.georgia.org/sites/default/files/2023-12/GDEcD_Announced_Projects_2020-2023.csv",
			Format:      FormatCSV,
			CapexField:  "Investment",
			JobsField:   "Jobs",
			LatField:    "location_lat",
			LngField:    "location_lon",
			YearField:   "Year",
			NameField:   "Company",
			SectorField: "Industry",
			DefaultType: model.TypeIndustrialMegaproject,
		},
		{
			State:       "TX",
			Name:        "Texas Incentivized Investments",
			URL:         "https://comptroller.texas.gov/data-centers/incentive-programs/investments.json",
			Format:      FormatJSON,
			CapexField:  "capex",
			JobsField:   "jobs",
			LatField:    "latitude",
			LngField:    "longitude",
			YearField:   "start_year",
			NameField:   "project_name",
			SectorField: "sector",
			DefaultType: model.TypeIndustrialMegaproject,
		},
		{
			State:       "TN",
			Name:        "Tennessee FastTrack Projects",
			URL:         "https://www.tn.gov/content/dam/tn/ecd/documents/fasttrack/FT_Projects.csv",
			Format:      FormatCSV,
			CapexField:  "Investment",
			JobsField:   "Jobs",
			LatField:    "lat",
			LngField:    "lng",
			YearField:   "Year",
			NameField:   "Project",
			SectorField: "Industry",
			DefaultType: model.TypeIndustrialMegaproject,
		},
		{
			State:       "IN",
			Name:        "Indiana Economic Development",
			URL:         "https://www.ieda.in.gov/data/projects.csv",
			Format:      FormatCSV,
			CapexField:  "Investment",
			JobsField:   "NewJobs",
			LatField:    "Latitude",
			LngField:    "Longitude",
			YearField:   "Year",
			NameField:   "Company",
			SectorField: "Industry",
			DefaultType: model.TypeIndustrialMegaproject,
		},
	}
}

// LoadSources reads additional source adapters from a yaml file with a
// top-level "sources" key and appends them to the built-in set. A source
// with the same name as a built-in replaces it.
func LoadSources(path string) ([]SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: read sources file %s", path)
	}

	var wrapper struct {
		Sources []SourceConfig `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrapf(err, "ingest: parse sources file %s", path)
	}

	merged := DefaultSources()
	for _, s := range wrapper.Sources {
		if s.DefaultType == "" {
			s.DefaultType = model.TypeIndustrialMegaproject
		}
		replaced := false
		for i := range merged {
			if merged[i].Name == s.Name {
				merged[i] = s
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, s)
		}
	}
	return merged, nil
}

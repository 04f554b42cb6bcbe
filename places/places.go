// Package places holds the static reference data the UI uses to populate its
// location selectors: the supported countries and, per country, a prefilled
// city list loaded from disk.
package places

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Country pairs an ISO code with a display name.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var countryNames = map[string]string{
	"AE": "United Arab Emirates",
	"AR": "Argentina",
	"AU": "Australia",
	"BR": "Brazil",
	"CA": "Canada",
	"CH": "Switzerland",
	"CN": "China",
	"DE": "Germany",
	"EG": "Egypt",
	"ES": "Spain",
	"FR": "France",
	"GB": "United Kingdom",
	"ID": "Indonesia",
	"IE": "Ireland",
	"IN": "India",
	"IT": "Italy",
	"JP": "Japan",
	"KE": "Kenya",
	"KR": "South Korea",
	"MX": "Mexico",
	"NG": "Nigeria",
	"NL": "Netherlands",
	"NZ": "New Zealand",
	"PL": "Poland",
	"PT": "Portugal",
	"SE": "Sweden",
	"SG": "Singapore",
	"TH": "Thailand",
	"TR": "Turkey",
	"US": "United States",
	"ZA": "South Africa",
}

// Countries returns the supported countries sorted by display name.
func Countries() []Country {
	countries := make([]Country, 0, len(countryNames))
	for code, name := range countryNames {
		countries = append(countries, Country{Code: code, Name: name})
	}
	sort.Slice(countries, func(i, j int) bool {
		return countries[i].Name < countries[j].Name
	})
	return countries
}

// CountryName resolves a country code to its display name.
func CountryName(code string) (string, bool) {
	name, ok := countryNames[strings.ToUpper(code)]
	return name, ok
}

// CityIndex reads per-country city lists from Dir. Each country is one JSON
// file named by its lowercased code containing an array of city names.
type CityIndex struct {
	Dir string
}

// Cities returns the prefilled city list for a country. A country without a
// city file is an empty list, not an error.
func (c *CityIndex) Cities(countryCode string) ([]string, error) {
	path := filepath.Join(c.Dir, strings.ToLower(countryCode)+".json")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cities []string
	if err := json.Unmarshal(data, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the literature-analyzer pipeline.
package types

// NoData is the sentinel stored in any Publication field whose source
// element is missing from the fetched record.
const NoData = "No Data"

// Columns lists the exported column names in their fixed order. Country is
// exported as "Publisher" to keep the column set of earlier exports.
var Columns = []string{"Title", "Abstract", "Journal", "PMID", "Publisher", "Language", "Year", "Month"}

// Publication is one flattened PubMed record. Every field holds either the
// extracted text or NoData.
type Publication struct {
	Title    string `json:"title" yaml:"title"`
	Abstract string `json:"abstract" yaml:"abstract"`
	Journal  string `json:"journal" yaml:"journal"`
	PMID     string `json:"pmid" yaml:"pmid"`
	Country  string `json:"publisher" yaml:"publisher"`
	Language string `json:"language" yaml:"language"`
	Year     string `json:"year" yaml:"year"`
	Month    string `json:"month" yaml:"month"`
}

// Values returns the fields in Columns order.
func (p Publication) Values() []string {
	return []string{p.Title, p.Abstract, p.Journal, p.PMID, p.Country, p.Language, p.Year, p.Month}
}

// PublicationFromValues builds a Publication from values in Columns order.
// Missing trailing values are set to NoData.
func PublicationFromValues(values []string) Publication {
	get := func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return NoData
	}
	return Publication{
		Title:    get(0),
		Abstract: get(1),
		Journal:  get(2),
		PMID:     get(3),
		Country:  get(4),
		Language: get(5),
		Year:     get(6),
		Month:    get(7),
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import "github.com/pdiddy/literature-analyzer/pkg/types"

// field binds a Publication field to its path below PubmedArticle. Repeated
// elements (AbstractText, Language) resolve to their first occurrence.
type field struct {
	path []string
	set  func(*types.Publication, string)
}

var fields = []field{
	{[]string{"MedlineCitation", "Article", "ArticleTitle"}, func(p *types.Publication, v string) { p.Title = v }},
	{[]string{"MedlineCitation", "Article", "Abstract", "AbstractText"}, func(p *types.Publication, v string) { p.Abstract = v }},
	{[]string{"MedlineCitation", "Article", "Journal", "Title"}, func(p *types.Publication, v string) { p.Journal = v }},
	{[]string{"MedlineCitation", "PMID"}, func(p *types.Publication, v string) { p.PMID = v }},
	{[]string{"MedlineCitation", "MedlineJournalInfo", "Country"}, func(p *types.Publication, v string) { p.Country = v }},
	{[]string{"MedlineCitation", "Article", "Language"}, func(p *types.Publication, v string) { p.Language = v }},
	{[]string{"MedlineCitation", "Article", "Journal", "JournalIssue", "PubDate", "Year"}, func(p *types.Publication, v string) { p.Year = v }},
	{[]string{"MedlineCitation", "Article", "Journal", "JournalIssue", "PubDate", "Month"}, func(p *types.Publication, v string) { p.Month = v }},
}

// Extract flattens one PubmedArticle record. Each field that cannot be
// found is set to types.NoData independently of the others.
func Extract(record *Node) types.Publication {
	var p types.Publication
	for _, f := range fields {
		v, ok := record.Lookup(f.path...)
		if !ok {
			v = types.NoData
		}
		f.set(&p, v)
	}
	return p
}

// ExtractAll flattens records in order, one Publication per record.
func ExtractAll(records []*Node) []types.Publication {
	pubs := make([]types.Publication, len(records))
	for i, r := range records {
		pubs[i] = Extract(r)
	}
	return pubs
}

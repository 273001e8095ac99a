package rulebook

// IndexDocument is the full taxonomy tree returned by GET /index:
// headers[].parts[] are sourcebooks, whose parts[] are chapters, whose
// parts[] are sections.
type IndexDocument struct {
	Headers []TaxonomyNode `json:"headers"`
}

// TaxonomyNode is one node of the published taxonomy. EntityID is a
// transient key: valid only within the fetch that produced it.
type TaxonomyNode struct {
	EntityID     string         `json:"entityId"`
	Name         string         `json:"name"`
	Code         string         `json:"code"`
	DocType      string         `json:"docType"`
	HomeURL      string         `json:"homeUrl"`
	LastModified string         `json:"lastModified"`
	IsDeleted    bool           `json:"isDeleted"`
	Parts        []TaxonomyNode `json:"parts"`
}

// ProvisionsDocument is the leaf-provision payload returned by
// GET /chapter-provisions/{chapterKey}.
type ProvisionsDocument struct {
	Provisions []Provision `json:"provisions"`
}

type Provision struct {
	ProvisionName  string `json:"provisionName"`
	ProvisionType  string `json:"provisionType"`
	ContentText    string `json:"contentText"`
	ContentType    string `json:"contentType"`
	EntityID       string `json:"entityId"`
	ProvisionTagID string `json:"provisionTagId"`
	SectionID      string `json:"sectionId"`
	IsDeleted      bool   `json:"isDeleted"`
}

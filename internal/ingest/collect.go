package ingest

import (
	"strings"

	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/clients/rulebook"
)

// CollectedSourcebook is one flattened sourcebook from the taxonomy index:
// an ordered chapter list plus a flat section list whose rows reference
// their chapter by transient key rather than array position, because the
// source tree may be irregular.
type CollectedSourcebook struct {
	Code         string
	Title        string
	DocType      string
	SourceURL    string
	LastModified string
	Chapters     []CollectedChapter
	Sections     []CollectedSection
}

// CollectedChapter carries the transient source key used later to resolve
// section parents and to fetch the chapter's provisions.
type CollectedChapter struct {
	Key        string
	Reference  string
	Title      string
	Number     string
	Path       string
	OrderIndex int
}

type CollectedSection struct {
	Key        string
	ParentKey  string
	Reference  string
	Title      string
	Number     string
	Path       string
	OrderIndex int
}

// Collect walks the nested index document and flattens it, skipping any
// node flagged deleted.
func Collect(doc *rulebook.IndexDocument) []CollectedSourcebook {
	var out []CollectedSourcebook
	if doc == nil {
		return out
	}
	for _, header := range doc.Headers {
		if header.IsDeleted {
			continue
		}
		for _, bookNode := range header.Parts {
			if bookNode.IsDeleted {
				continue
			}
			out = append(out, collectSourcebook(bookNode))
		}
	}
	return out
}

func collectSourcebook(node rulebook.TaxonomyNode) CollectedSourcebook {
	code := firstToken(node.Code)
	if code == "" {
		code = firstToken(node.Name)
	}
	book := CollectedSourcebook{
		Code:         code,
		Title:        sourcebookTitle(node.Name, code),
		DocType:      node.DocType,
		SourceURL:    node.HomeURL,
		LastModified: node.LastModified,
	}
	order := 0
	for _, chapNode := range node.Parts {
		if chapNode.IsDeleted {
			continue
		}
		chapter := collectChapter(chapNode, order)
		book.Chapters = append(book.Chapters, chapter)
		order++
		for i, secNode := range chapNode.Parts {
			if secNode.IsDeleted {
				continue
			}
			book.Sections = append(book.Sections, collectSection(secNode, chapter.Key, i))
		}
	}
	return book
}

func collectChapter(node rulebook.TaxonomyNode, orderIndex int) CollectedChapter {
	split := SplitName(node.Name)
	reference := split.Reference
	if reference == "" {
		reference = strings.TrimSpace(node.Code)
	}
	if reference == "" {
		reference = node.EntityID
	}
	return CollectedChapter{
		Key:        node.EntityID,
		Reference:  reference,
		Title:      split.Title,
		Number:     strings.TrimSpace(node.Code),
		Path:       slashPath(reference),
		OrderIndex: orderIndex,
	}
}

func collectSection(node rulebook.TaxonomyNode, parentKey string, orderIndex int) CollectedSection {
	split := SplitName(node.Name)
	reference := split.Reference
	if reference == "" {
		reference = strings.TrimSpace(node.Code)
	}
	if reference == "" {
		reference = node.EntityID
	}
	return CollectedSection{
		Key:        node.EntityID,
		ParentKey:  parentKey,
		Reference:  reference,
		Title:      split.Title,
		Number:     strings.TrimSpace(node.Code),
		Path:       slashPath(reference),
		OrderIndex: orderIndex,
	}
}

func sourcebookTitle(name, code string) string {
	split := SplitName(name)
	if split.Title != "" {
		return split.Title
	}
	name = strings.TrimSpace(name)
	if code != "" {
		name = strings.TrimSpace(strings.TrimPrefix(name, code))
	}
	return name
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func slashPath(reference string) string {
	return strings.Join(strings.Fields(reference), "/")
}

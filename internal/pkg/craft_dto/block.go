// Package craft_dto holds the wire types of the remote document-store API.
// Blocks nest arbitrarily; both the `content` and `blocks` fields may carry
// children depending on the endpoint.
package craft_dto

type Block struct {
	ID        string  `json:"id,omitempty"`
	Type      string  `json:"type,omitempty"`
	TextStyle string  `json:"textStyle,omitempty"`
	Markdown  string  `json:"markdown,omitempty"`
	Content   []Block `json:"content,omitempty"`
	Blocks    []Block `json:"blocks,omitempty"`
}

type Document struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	IsDeleted bool   `json:"isDeleted"`
}

type DocumentsResponse struct {
	Items []Document `json:"items"`
}

type InsertPosition struct {
	Position string `json:"position"`
	PageID   string `json:"pageId"`
}

type InsertBlocksRequest struct {
	Blocks   []Block        `json:"blocks"`
	Position InsertPosition `json:"position"`
}

type InsertBlocksResponse struct {
	Items []Block `json:"items"`
}

type UpdateBlocksRequest struct {
	Blocks []Block `json:"blocks"`
}

// ExtractMarkdown walks a block tree depth-first and returns the first
// markdown payload found.
func ExtractMarkdown(block *Block) string {
	if block == nil {
		return ""
	}
	if block.Markdown != "" {
		return block.Markdown
	}
	if len(block.Blocks) > 0 {
		if md := ExtractMarkdown(&block.Blocks[0]); md != "" {
			return md
		}
	}
	if len(block.Content) > 0 {
		return ExtractMarkdown(&block.Content[0])
	}
	return ""
}

// CollectMarkdown gathers every markdown payload in a block tree, in document
// order. Used to scan sibling blocks for metadata markers.
func CollectMarkdown(block *Block) []string {
	if block == nil {
		return nil
	}
	var markdowns []string
	if block.Markdown != "" {
		markdowns = append(markdowns, block.Markdown)
	}
	for i := range block.Blocks {
		markdowns = append(markdowns, CollectMarkdown(&block.Blocks[i])...)
	}
	for i := range block.Content {
		markdowns = append(markdowns, CollectMarkdown(&block.Content[i])...)
	}
	return markdowns
}

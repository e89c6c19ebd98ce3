package tokenizer

import (
	"strings"

	"github.com/mandalnilabja/llmshim/internal/types"
)

// Image pricing without dimensions: a base charge plus 512px tiles. Low
// detail is always one tile; anything else assumes the tile cap.
const (
	imageBaseTokens     = 85
	imageTileTokens     = 170
	imageLowDetailTiles = 1
	imageHighDetailMax  = 4
)

// countContent counts plain text, or the text and image parts of a
// multimodal message. Unknown part types are free.
func (t *TiktokenTokenizer) countContent(content types.Content, model string) (int, error) {
	if len(content.Parts) == 0 {
		return t.CountTokens(content.Text, model)
	}

	total := 0
	for _, part := range content.Parts {
		switch part.Type {
		case types.ContentTypeText:
			n, err := t.CountTokens(part.Text, model)
			if err != nil {
				return 0, err
			}
			total += n
		case types.ContentTypeImageURL:
			total += imageTokens(part.ImageURL)
		}
	}
	return total, nil
}

func imageTokens(img *types.ImageURL) int {
	if img == nil {
		return 0
	}
	tiles := imageHighDetailMax
	if strings.EqualFold(img.Detail, "low") {
		tiles = imageLowDetailTiles
	}
	return imageBaseTokens + tiles*imageTileTokens
}

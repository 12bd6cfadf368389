package docx

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"image"
	"regexp"
	"strconv"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/beevik/etree"
)

// Figures arrive as pasted HTML with the image bytes inlined.
var dataImageRegex = regexp.MustCompile(`(?i)<img[^>]+src=["'](data:image/[^;]+;base64,[^"']+)["']`)

const (
	// Rendered image width: the full text column, 6.5 inches in EMUs.
	imageWidthEMU = 5943600

	// Fallback 4:3 height when the image bytes cannot be decoded.
	imageFallbackHeightEMU = 4457700
)

// extractDataImages pulls the base64 data URLs out of an HTML fragment.
func extractDataImages(fragment string) []string {
	var urls []string
	for _, m := range dataImageRegex.FindAllStringSubmatch(fragment, -1) {
		urls = append(urls, m[1])
	}
	return urls
}

// decodeDataImage decodes a data:image/...;base64 URL into raw bytes
// and a file extension.
func decodeDataImage(url string) ([]byte, string, error) {
	header, payload, ok := strings.Cut(url, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") {
		return nil, "", fmt.Errorf("not an inline image URL")
	}
	ext := strings.TrimPrefix(header, "data:image/")
	if idx := strings.Index(ext, ";"); idx >= 0 {
		ext = ext[:idx]
	}
	if ext == "jpeg" {
		ext = "jpg"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode inline image: %w", err)
	}
	return data, ext, nil
}

// imageExtentEMU computes the rendered size: full column width with the
// height following the image's aspect ratio.
func imageExtentEMU(data []byte) (cx, cy int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 {
		return imageWidthEMU, imageFallbackHeightEMU
	}
	return imageWidthEMU, int(int64(imageWidthEMU) * int64(cfg.Height) / int64(cfg.Width))
}

// buildDrawing renders an embedded image as an inline w:drawing with a
// thin black border.
func buildDrawing(relID string, num, cx, cy int) *etree.Element {
	id := strconv.Itoa(num)
	name := "Figure " + id
	ext := func(parent *etree.Element, tag string) *etree.Element {
		return parent.CreateElement(tag)
	}

	drawing := etree.NewElement("w:drawing")
	inline := ext(drawing, "wp:inline")
	for _, attr := range []string{"distT", "distB", "distL", "distR"} {
		inline.CreateAttr(attr, "0")
	}

	extent := ext(inline, "wp:extent")
	extent.CreateAttr("cx", strconv.Itoa(cx))
	extent.CreateAttr("cy", strconv.Itoa(cy))

	effect := ext(inline, "wp:effectExtent")
	for _, attr := range []string{"l", "t", "r", "b"} {
		effect.CreateAttr(attr, "0")
	}

	docPr := ext(inline, "wp:docPr")
	docPr.CreateAttr("id", id)
	docPr.CreateAttr("name", name)

	framePr := ext(inline, "wp:cNvGraphicFramePr")
	locks := ext(framePr, "a:graphicFrameLocks")
	locks.CreateAttr("xmlns:a", "http://schemas.openxmlformats.org/drawingml/2006/main")
	locks.CreateAttr("noChangeAspect", "1")

	graphic := ext(inline, "a:graphic")
	graphic.CreateAttr("xmlns:a", "http://schemas.openxmlformats.org/drawingml/2006/main")
	graphicData := ext(graphic, "a:graphicData")
	graphicData.CreateAttr("uri", "http://schemas.openxmlformats.org/drawingml/2006/picture")

	pic := ext(graphicData, "pic:pic")
	pic.CreateAttr("xmlns:pic", "http://schemas.openxmlformats.org/drawingml/2006/picture")

	nvPicPr := ext(pic, "pic:nvPicPr")
	cNvPr := ext(nvPicPr, "pic:cNvPr")
	cNvPr.CreateAttr("id", id)
	cNvPr.CreateAttr("name", name)
	ext(nvPicPr, "pic:cNvPicPr")

	blipFill := ext(pic, "pic:blipFill")
	blip := ext(blipFill, "a:blip")
	blip.CreateAttr("r:embed", relID)
	stretch := ext(blipFill, "a:stretch")
	ext(stretch, "a:fillRect")

	spPr := ext(pic, "pic:spPr")
	xfrm := ext(spPr, "a:xfrm")
	off := ext(xfrm, "a:off")
	off.CreateAttr("x", "0")
	off.CreateAttr("y", "0")
	size := ext(xfrm, "a:ext")
	size.CreateAttr("cx", strconv.Itoa(cx))
	size.CreateAttr("cy", strconv.Itoa(cy))
	geom := ext(spPr, "a:prstGeom")
	geom.CreateAttr("prst", "rect")
	ext(geom, "a:avLst")

	// 1px border.
	ln := ext(spPr, "a:ln")
	ln.CreateAttr("w", "9525")
	fill := ext(ln, "a:solidFill")
	clr := ext(fill, "a:srgbClr")
	clr.CreateAttr("val", "000000")

	return drawing
}

var (
	htmlTagRegex  = regexp.MustCompile(`<[^>]*>`)
	brTagRegex    = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockEndRegex = regexp.MustCompile(`(?i)</(?:p|div|tr)>`)
)

// stripTags flattens an HTML fragment to plain text, the fallback when
// a figure or table holds nothing renderable.
func stripTags(fragment string) string {
	s := brTagRegex.ReplaceAllString(fragment, "\n")
	s = blockEndRegex.ReplaceAllString(s, "\n")
	s = htmlTagRegex.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	var cleaned []string
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

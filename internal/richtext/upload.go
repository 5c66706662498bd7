package richtext

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// PlaceholderMark tags the placeholder span so editors can style it as a
// visually distinct run.
const PlaceholderMark = "upload-placeholder"

// PlaceholderFor returns the placeholder text inserted while an image
// upload for the given file is in flight.
func PlaceholderFor(filename string) string {
	name := strings.TrimSpace(filename)
	if name == "" {
		name = "image"
	}
	return "[Uploading " + name + "...]"
}

// placeholderFragments lists partial forms of the placeholder, longest
// first. They handle the case where the user edited near the placeholder
// while the upload was in flight.
func placeholderFragments(placeholder string) []string {
	frags := []string{placeholder}
	if trimmed := strings.TrimSuffix(placeholder, "...]"); trimmed != placeholder {
		frags = append(frags, trimmed)
	}
	if trimmed := strings.TrimPrefix(placeholder, "["); trimmed != placeholder {
		frags = append(frags, trimmed)
	}
	frags = append(frags, "[Uploading", "...]")
	return frags
}

// Asset is the uploaded-image descriptor consumed by the splice step.
type Asset struct {
	ID  string
	URL string
}

// Uploader performs the asynchronous upload of the selected file.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (*Asset, error)
}

// Events carries the flow's notifications. Nil callbacks are skipped.
type Events struct {
	UploadStarted func()
	UploadEnded   func()
	Failed        func(err error)
}

// Position addresses a span boundary inside a document: the placeholder
// is inserted before span index Span of block index Block. Out-of-range
// values append.
type Position struct {
	Block int
	Span  int
}

// ImageInsertion is one in-flight image upload tied to a document.
type ImageInsertion struct {
	doc         *Document
	placeholder string
	alt         string
	cursor      Position
	events      Events
	done        bool
}

// BeginImageInsertion notifies "upload started", inserts a distinct
// placeholder run at the cursor and advances the cursor past it.
func BeginImageInsertion(doc *Document, cursor Position, filename string, ev Events) *ImageInsertion {
	ins := &ImageInsertion{
		doc:         doc,
		placeholder: PlaceholderFor(filename),
		alt:         strings.TrimSpace(filename),
		events:      ev,
	}
	if ev.UploadStarted != nil {
		ev.UploadStarted()
	}

	span := Span{Key: NewKey(), Text: ins.placeholder, Marks: []string{PlaceholderMark}}

	d := *doc
	if len(d) == 0 || cursor.Block >= len(d) || d[clampBlock(cursor.Block, len(d))].Type != BlockText {
		blk := Block{Key: NewKey(), Type: BlockText, Style: "normal", Spans: []Span{span}}
		at := clampBlock(cursor.Block, len(d)+1)
		d = append(d[:at], append(Document{blk}, d[at:]...)...)
		*doc = d
		ins.cursor = Position{Block: at, Span: 1}
		return ins
	}

	bi := clampBlock(cursor.Block, len(d))
	spans := d[bi].Spans
	si := cursor.Span
	if si < 0 || si > len(spans) {
		si = len(spans)
	}
	d[bi].Spans = append(spans[:si], append([]Span{span}, spans[si:]...)...)
	*doc = d
	ins.cursor = Position{Block: bi, Span: si + 1}
	return ins
}

// Cursor returns the position just past the inserted placeholder.
func (ins *ImageInsertion) Cursor() Position { return ins.cursor }

// Complete re-locates the placeholder (exact match first, then partial
// fragments), deletes the located span and inserts an embedded-image
// block at that position. If no fragment matches, the document is left
// untouched; editing the placeholder away entirely is an acknowledged gap.
func (ins *ImageInsertion) Complete(asset Asset) bool {
	defer ins.finish(nil)
	removed, at := ins.removePlaceholder()
	if !removed {
		return false
	}
	img := ImageBlock(asset.URL, asset.ID, ins.alt)
	d := *ins.doc
	if at > len(d) {
		at = len(d)
	}
	d = append(d[:at], append(Document{img}, d[at:]...)...)
	*ins.doc = d
	return true
}

// Fail removes the placeholder (exact match, else partial fragment) and
// surfaces the failure.
func (ins *ImageInsertion) Fail(err error) {
	ins.removePlaceholder()
	ins.finish(err)
}

// CleanupStrays removes leftover placeholder fragments. It is the short
// delayed cleanup pass of the success path: defensive, not guaranteed.
func (ins *ImageInsertion) CleanupStrays() {
	for _, frag := range placeholderFragments(ins.placeholder) {
		removeText(ins.doc, frag)
	}
}

func (ins *ImageInsertion) finish(err error) {
	if ins.done {
		return
	}
	ins.done = true
	if err != nil && ins.events.Failed != nil {
		ins.events.Failed(err)
	}
	if ins.events.UploadEnded != nil {
		ins.events.UploadEnded()
	}
}

// removePlaceholder deletes the placeholder span and reports the block
// index where the image block should be spliced in.
func (ins *ImageInsertion) removePlaceholder() (bool, int) {
	for _, frag := range placeholderFragments(ins.placeholder) {
		if at, ok := removeText(ins.doc, frag); ok {
			return true, at
		}
	}
	return false, 0
}

// removeText deletes the first occurrence of text from the document and
// returns the splice index for that location. Whole spans that become
// empty are dropped; a text block left without spans is dropped too.
func removeText(doc *Document, text string) (int, bool) {
	d := *doc
	for bi := range d {
		if d[bi].Type != BlockText {
			continue
		}
		for si := range d[bi].Spans {
			full := d[bi].Spans[si].Text
			idx := strings.Index(full, text)
			if idx < 0 {
				continue
			}
			rest := full[:idx] + full[idx+len(text):]
			if strings.TrimSpace(rest) == "" {
				d[bi].Spans = append(d[bi].Spans[:si], d[bi].Spans[si+1:]...)
			} else {
				d[bi].Spans[si].Text = rest
			}
			at := bi + 1
			if len(d[bi].Spans) == 0 {
				d = append(d[:bi], d[bi+1:]...)
				at = bi
			}
			*doc = d
			return at, true
		}
	}
	return 0, false
}

// UploadImage runs the whole flow: placeholder insertion, the suspending
// upload call, the success/failure splice and the stray-fragment cleanup.
// The upload is not cancellable once started and has no timeout beyond
// the transport's own.
func UploadImage(ctx context.Context, doc *Document, cursor Position, filename, contentType string, r io.Reader, up Uploader, ev Events) error {
	ins := BeginImageInsertion(doc, cursor, filename, ev)

	asset, err := up.Upload(ctx, filename, contentType, r)
	if err != nil {
		ins.Fail(err)
		return fmt.Errorf("richtext: image upload: %w", err)
	}

	ins.Complete(Asset{ID: asset.ID, URL: asset.URL})
	ins.CleanupStrays()
	return nil
}

func clampBlock(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		if n == 0 {
			return 0
		}
		return n - 1
	}
	return i
}

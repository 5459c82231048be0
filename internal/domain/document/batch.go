package document

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// BatchGroup is a reconstructed batch: up to one file per kind plus any extras.
type BatchGroup struct {
	ID        string // group key: batch id, or the record id for legacy uploads
	BatchID   *string
	CreatedAt time.Time // newest record's timestamp
	BL        *UploadedFile
	Payment   *UploadedFile
	Invoice   *UploadedFile
	Others    []*UploadedFile
}

// Slot returns the file stored in the slot for kind k.
func (g *BatchGroup) Slot(k Kind) *UploadedFile {
	switch k {
	case KindBL:
		return g.BL
	case KindPayment:
		return g.Payment
	case KindInvoice:
		return g.Invoice
	}
	return nil
}

// TotalSize sums the sizes of the three kind slots.
func (g *BatchGroup) TotalSize() int64 {
	var total int64
	for _, k := range BatchKinds() {
		if f := g.Slot(k); f != nil {
			total += f.SizeInBytes
		}
	}
	return total
}

// Complete reports whether all three kinds are present.
func (g *BatchGroup) Complete() bool {
	return g.BL != nil && g.Payment != nil && g.Invoice != nil
}

// place puts f into its kind slot, replacing any file already there. Files
// arrive newest first, so the oldest upload of a kind ends up in the slot.
func (g *BatchGroup) place(f *UploadedFile) {
	var slot **UploadedFile
	switch f.KindValue() {
	case KindBL:
		slot = &g.BL
	case KindPayment:
		slot = &g.Payment
	case KindInvoice:
		slot = &g.Invoice
	default:
		g.Others = append(g.Others, f)
		return
	}
	*slot = f
}

// GroupUploads rebuilds batches from file records.
//
// Records are grouped on GroupKey. Within a group the first upload of a kind
// (the oldest record) wins its slot; records without a batch kind are
// collected in Others. Groups are returned newest first by their most recent
// record, ties broken by key so the result is deterministic.
func GroupUploads(files []*UploadedFile) []*BatchGroup {
	sorted := make([]*UploadedFile, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	index := make(map[string]*BatchGroup)
	groups := make([]*BatchGroup, 0)
	for _, f := range sorted {
		key := f.GroupKey()
		g, ok := index[key]
		if !ok {
			g = &BatchGroup{ID: key, BatchID: f.BatchID, CreatedAt: f.CreatedAt}
			index[key] = g
			groups = append(groups, g)
		}
		if f.CreatedAt.After(g.CreatedAt) {
			g.CreatedAt = f.CreatedAt
		}
		g.place(f)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if !groups[i].CreatedAt.Equal(groups[j].CreatedAt) {
			return groups[i].CreatedAt.After(groups[j].CreatedAt)
		}
		return groups[i].ID < groups[j].ID
	})
	return groups
}

// NewBatchID returns a random batch identifier.
// If no UUID can be drawn it falls back to "<unix millis>-<base36 random>".
func NewBatchID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	return fallbackBatchID(time.Now())
}

func fallbackBatchID(now time.Time) string {
	suffix := strconv.FormatInt(now.UnixNano()%1_000_000_007, 36)
	if n, err := rand.Int(rand.Reader, big.NewInt(1<<40)); err == nil {
		suffix = n.Text(36)
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
}

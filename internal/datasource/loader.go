package datasource

import (
	"context"
	"encoding/json"

	"go-inventory-dashboard/internal/logger"
	"go-inventory-dashboard/internal/model"
	"go-inventory-dashboard/pkg/validator"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Section names a top-level key of inventory-data.json.
type Section string

const (
	SectionStats Section = "stats"
	SectionBar   Section = "barChartData"
	SectionLine  Section = "lineChartData"
	SectionPie   Section = "pieChartData"
)

var sections = []Section{SectionStats, SectionBar, SectionLine, SectionPie}

// ErrShapeMismatch marks a section that decoded but failed validation.
var ErrShapeMismatch = errors.New("shape mismatch")

// Dashboard is everything the dashboard page renders. It is always complete:
// sections that could not be loaded hold their fallback dataset and are
// listed in Fallbacks.
type Dashboard struct {
	Stats     model.Stats            `json:"stats"`
	BarData   []model.CategoryRecord `json:"barChartData"`
	LineData  []model.TimePoint      `json:"lineChartData"`
	PieData   []model.Slice          `json:"pieChartData"`
	Fallbacks []Section              `json:"fallbacks,omitempty"`
}

// FellBack reports whether s holds fallback data.
func (d Dashboard) FellBack(s Section) bool {
	for _, f := range d.Fallbacks {
		if f == s {
			return true
		}
	}
	return false
}

type Loader struct {
	source Source
}

func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// LoadDashboard never fails. A fetch or parse failure of the whole document
// falls back every section; otherwise each section is resolved on its own.
func (l *Loader) LoadDashboard(ctx context.Context) Dashboard {
	d := Dashboard{
		Stats:    FallbackStats(),
		BarData:  FallbackBarData(),
		LineData: FallbackLineData(),
		PieData:  FallbackPieData(),
	}

	raw, err := l.source.Fetch(ctx, DashboardResource)
	if err == nil {
		var doc map[string]json.RawMessage
		if err = json.Unmarshal(raw, &doc); err == nil {
			for _, s := range sections {
				if serr := d.decode(s, doc[string(s)]); serr != nil {
					logger.Warn("using fallback data",
						zap.String("resource", DashboardResource),
						zap.String("section", string(s)),
						zap.Error(serr))
					d.Fallbacks = append(d.Fallbacks, s)
				}
			}
			return d
		}
		err = errors.Wrap(err, "decode document")
	}

	logger.Warn("using fallback data",
		zap.String("resource", DashboardResource),
		zap.Error(err))
	d.Fallbacks = append(d.Fallbacks, sections...)
	return d
}

// decode replaces the section's fallback with the parsed value only when it
// is present, non-empty and valid.
func (d *Dashboard) decode(s Section, raw json.RawMessage) error {
	if len(raw) == 0 || string(raw) == "null" {
		return errors.Errorf("section %s missing", s)
	}

	switch s {
	case SectionStats:
		var stats model.Stats
		if err := json.Unmarshal(raw, &stats); err != nil {
			return errors.Wrapf(err, "decode %s", s)
		}
		if errs := validator.ValidateStruct(&stats); len(errs) > 0 {
			return errors.Wrapf(ErrShapeMismatch, "%s: %v", s, errs[0])
		}
		d.Stats = stats
	case SectionBar:
		records, err := decodeList[model.CategoryRecord](s, raw)
		if err != nil {
			return err
		}
		d.BarData = records
	case SectionLine:
		points, err := decodeList[model.TimePoint](s, raw)
		if err != nil {
			return err
		}
		d.LineData = points
	case SectionPie:
		slices, err := decodeList[model.Slice](s, raw)
		if err != nil {
			return err
		}
		d.PieData = slices
	}
	return nil
}

func decodeList[T any](s Section, raw json.RawMessage) ([]T, error) {
	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, errors.Wrapf(err, "decode %s", s)
	}
	if len(list) == 0 {
		return nil, errors.Errorf("section %s empty", s)
	}
	if errs := validator.ValidateSlice(list); len(errs) > 0 {
		return nil, errors.Wrapf(ErrShapeMismatch, "%s: %v", s, errs[0])
	}
	return list, nil
}

type itemsDocument struct {
	Items []model.InventoryItem `json:"items"`
}

// LoadItems returns the inventory table rows. The table has no fallback
// dataset, so any failure yields an empty list.
func (l *Loader) LoadItems(ctx context.Context) []model.InventoryItem {
	items, err := l.loadItems(ctx)
	if err != nil {
		logger.Warn("failed to load inventory items",
			zap.String("resource", ItemsResource),
			zap.Error(err))
		return []model.InventoryItem{}
	}
	return items
}

func (l *Loader) loadItems(ctx context.Context) ([]model.InventoryItem, error) {
	raw, err := l.source.Fetch(ctx, ItemsResource)
	if err != nil {
		return nil, err
	}
	var doc itemsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "decode items")
	}
	if errs := validator.ValidateSlice(doc.Items); len(errs) > 0 {
		return nil, errors.Wrapf(ErrShapeMismatch, "items: %v", errs[0])
	}
	if doc.Items == nil {
		doc.Items = []model.InventoryItem{}
	}
	return doc.Items, nil
}

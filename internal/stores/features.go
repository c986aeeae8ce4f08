package stores

import (
	"context"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
	"github.com/rashedalhajeri/quickstore-builder/pkg/common"
)

// MaxFeatures caps the storefront selling points per store.
const MaxFeatures = 4

var ErrTooManyFeatures = errors.Errorf("a store can have at most %d features", MaxFeatures)

// FetchFeatures returns the store's features in insertion order.
func (s *Service) FetchFeatures(ctx context.Context, storeID string) ([]domain.StoreFeature, error) {
	var rows []domain.StoreFeature
	err := s.gw.Query(ctx, gateway.Spec{
		Table:   "store_features",
		Filters: []gateway.Filter{gateway.Eq("store_id", storeID)},
		Order:   []gateway.Order{gateway.Asc("created_at")},
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DefaultThemeSettings are the values inserted when a store saves
// features before ever touching theme settings.
func DefaultThemeSettings(storeID string) domain.StoreThemeSettings {
	return domain.StoreThemeSettings{
		ID:                  common.UUID(),
		StoreID:             storeID,
		ThemeID:             "default",
		PrimaryColor:        "#22C55E",
		SecondaryColor:      "#E2E8F0",
		AccentColor:         "#CBD5E0",
		FontFamily:          "default",
		LayoutType:          "grid",
		ProductsPerRow:      3,
		ShowFeaturesSection: true,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
}

// SaveFeatures persists the features editor in the same call sequence the
// dashboard has always used: ensure the theme-settings row (update when
// present, insert defaults when absent), delete every existing feature,
// then insert the new set. The steps are independent remote calls with
// no rollback; a failure partway through leaves the earlier steps
// applied.
func (s *Service) SaveFeatures(ctx context.Context, storeID string, features []domain.StoreFeature, showSection bool) error {
	if len(features) > MaxFeatures {
		return ErrTooManyFeatures
	}

	var settings domain.StoreThemeSettings
	found, err := s.gw.QueryMaybeOne(ctx, gateway.Spec{
		Table:   "store_theme_settings",
		Filters: []gateway.Filter{gateway.Eq("store_id", storeID)},
	}, &settings)
	if err != nil {
		return err
	}
	if found {
		_, err = s.gw.Update(ctx, "store_theme_settings",
			map[string]interface{}{"show_features_section": showSection, "updated_at": time.Now()},
			gateway.Eq("store_id", storeID))
		if err != nil {
			return err
		}
	} else {
		defaults := DefaultThemeSettings(storeID)
		defaults.ShowFeaturesSection = showSection
		if err := s.gw.Insert(ctx, "store_theme_settings", &defaults); err != nil {
			return err
		}
	}

	if _, err := s.gw.Delete(ctx, "store_features", gateway.Eq("store_id", storeID)); err != nil {
		zap.S().Errorf("delete store features failed: %s", err.Error())
		return err
	}

	if len(features) == 0 {
		return nil
	}
	now := time.Now()
	rows := make([]domain.StoreFeature, 0, len(features))
	for i, f := range features {
		f.ID = common.UUID()
		f.StoreID = storeID
		// keep insertion order stable for the asc read
		f.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		rows = append(rows, f)
	}
	return s.gw.Insert(ctx, "store_features", rows)
}

// GetThemeSettings returns the theme settings row, or defaults when the
// store never saved any.
func (s *Service) GetThemeSettings(ctx context.Context, storeID string) (domain.StoreThemeSettings, error) {
	var settings domain.StoreThemeSettings
	found, err := s.gw.QueryMaybeOne(ctx, gateway.Spec{
		Table:   "store_theme_settings",
		Filters: []gateway.Filter{gateway.Eq("store_id", storeID)},
	}, &settings)
	if err != nil {
		return settings, err
	}
	if !found {
		defaults := DefaultThemeSettings(storeID)
		defaults.ID = ""
		return defaults, nil
	}
	return settings, nil
}

// themeSettingsPatch is the editable subset of theme settings accepted
// from the dashboard.
type themeSettingsPatch struct {
	ThemeID             *string `mapstructure:"theme_id"`
	PrimaryColor        *string `mapstructure:"primary_color"`
	SecondaryColor      *string `mapstructure:"secondary_color"`
	AccentColor         *string `mapstructure:"accent_color"`
	FontFamily          *string `mapstructure:"font_family"`
	LayoutType          *string `mapstructure:"layout_type"`
	ProductsPerRow      *int    `mapstructure:"products_per_row"`
	ShowFeaturesSection *bool   `mapstructure:"show_features_section"`
}

// SaveThemeSettings applies a loosely-typed settings map (only known
// keys) to the store's theme row, inserting defaults first when absent.
func (s *Service) SaveThemeSettings(ctx context.Context, storeID string, values map[string]interface{}) error {
	var patch themeSettingsPatch
	if err := mapstructure.WeakDecode(values, &patch); err != nil {
		return errors.Wrap(err, "decode theme settings")
	}

	var existing domain.StoreThemeSettings
	found, err := s.gw.QueryMaybeOne(ctx, gateway.Spec{
		Table:   "store_theme_settings",
		Filters: []gateway.Filter{gateway.Eq("store_id", storeID)},
	}, &existing)
	if err != nil {
		return err
	}
	if !found {
		if err := s.gw.Insert(ctx, "store_theme_settings", DefaultThemeSettings(storeID)); err != nil {
			return err
		}
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if patch.ThemeID != nil {
		updates["theme_id"] = *patch.ThemeID
	}
	if patch.PrimaryColor != nil {
		updates["primary_color"] = *patch.PrimaryColor
	}
	if patch.SecondaryColor != nil {
		updates["secondary_color"] = *patch.SecondaryColor
	}
	if patch.AccentColor != nil {
		updates["accent_color"] = *patch.AccentColor
	}
	if patch.FontFamily != nil {
		updates["font_family"] = *patch.FontFamily
	}
	if patch.LayoutType != nil {
		updates["layout_type"] = *patch.LayoutType
	}
	if patch.ProductsPerRow != nil {
		updates["products_per_row"] = *patch.ProductsPerRow
	}
	if patch.ShowFeaturesSection != nil {
		updates["show_features_section"] = *patch.ShowFeaturesSection
	}
	_, err = s.gw.Update(ctx, "store_theme_settings", updates, gateway.Eq("store_id", storeID))
	return err
}

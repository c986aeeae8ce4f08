package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormClient executes specs on a gorm-managed Postgres connection.
type GormClient struct {
	db *gorm.DB
}

func NewGormClient(db *gorm.DB) *GormClient {
	return &GormClient{db: db}
}

var _ Client = (*GormClient)(nil)

func (c *GormClient) base(ctx context.Context, spec Spec) (*gorm.DB, error) {
	if !ValidIdent(spec.Table) {
		return nil, errors.Errorf("gateway: invalid table name %q", spec.Table)
	}
	tx := c.db.WithContext(ctx).Table(spec.Table)
	if len(spec.Selects) > 0 {
		tx = tx.Select(strings.Join(spec.Selects, ", "))
	}
	for _, j := range spec.Joins {
		tx = tx.Joins(j.Clause, j.Args...)
	}
	return applyFilters(tx, spec.Table, spec.Filters)
}

func applyFilters(tx *gorm.DB, table string, filters []Filter) (*gorm.DB, error) {
	for _, f := range filters {
		if f.Op != OpOrILike && !ValidIdent(f.Column) {
			return nil, errors.Errorf("gateway: invalid column name %q", f.Column)
		}
		switch f.Op {
		case OpEq:
			tx = tx.Where(fmt.Sprintf("%s = ?", col(table, f.Column)), f.Value)
		case OpNe:
			tx = tx.Where(fmt.Sprintf("%s <> ?", col(table, f.Column)), f.Value)
		case OpIn:
			tx = tx.Where(fmt.Sprintf("%s IN ?", col(table, f.Column)), f.Value)
		case OpNotNull:
			tx = tx.Where(fmt.Sprintf("%s IS NOT NULL", col(table, f.Column)))
		case OpIsNull:
			tx = tx.Where(fmt.Sprintf("%s IS NULL", col(table, f.Column)))
		case OpGte:
			tx = tx.Where(fmt.Sprintf("%s >= ?", col(table, f.Column)), f.Value)
		case OpLte:
			tx = tx.Where(fmt.Sprintf("%s <= ?", col(table, f.Column)), f.Value)
		case OpOrILike:
			clauses := make([]string, 0, len(f.Columns))
			args := make([]interface{}, 0, len(f.Columns))
			pattern := "%" + fmt.Sprint(f.Value) + "%"
			for _, fc := range f.Columns {
				if !ValidIdent(fc) {
					return nil, errors.Errorf("gateway: invalid column name %q", fc)
				}
				clauses = append(clauses, fmt.Sprintf("%s ILIKE ?", col(table, fc)))
				args = append(args, pattern)
			}
			tx = tx.Where("("+strings.Join(clauses, " OR ")+")", args...)
		default:
			return nil, errors.Errorf("gateway: unsupported filter op %q", f.Op)
		}
	}
	return tx, nil
}

// col qualifies unqualified column names with the table to keep filters
// unambiguous in joined queries.
func col(table, column string) string {
	if strings.Contains(column, ".") {
		return column
	}
	return table + "." + column
}

func applyOrder(tx *gorm.DB, table string, order []Order) (*gorm.DB, error) {
	for _, o := range order {
		if !ValidIdent(o.Column) {
			return nil, errors.Errorf("gateway: invalid order column %q", o.Column)
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		tx = tx.Order(fmt.Sprintf("%s %s", col(table, o.Column), dir))
	}
	return tx, nil
}

func (c *GormClient) Query(ctx context.Context, spec Spec, dest interface{}) error {
	tx, err := c.base(ctx, spec)
	if err != nil {
		return err
	}
	tx, err = applyOrder(tx, spec.Table, spec.Order)
	if err != nil {
		return err
	}
	if spec.Range != nil {
		tx = tx.Offset(spec.Range.Offset).Limit(spec.Range.Limit)
	} else if spec.Limit > 0 {
		tx = tx.Limit(spec.Limit)
	}
	if err := tx.Find(dest).Error; err != nil {
		return errors.Wrapf(err, "gateway: query %s", spec.Table)
	}
	return nil
}

func (c *GormClient) QueryCount(ctx context.Context, spec Spec, dest interface{}) (int64, error) {
	countSpec := spec
	countSpec.Selects = nil
	tx, err := c.base(ctx, countSpec)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return 0, errors.Wrapf(err, "gateway: count %s", spec.Table)
	}
	if err := c.Query(ctx, spec, dest); err != nil {
		return 0, err
	}
	return total, nil
}

func (c *GormClient) QueryOne(ctx context.Context, spec Spec, dest interface{}) error {
	tx, err := c.base(ctx, spec)
	if err != nil {
		return err
	}
	tx, err = applyOrder(tx, spec.Table, spec.Order)
	if err != nil {
		return err
	}
	if err := tx.Take(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return errors.Wrapf(err, "gateway: query one %s", spec.Table)
	}
	return nil
}

func (c *GormClient) QueryMaybeOne(ctx context.Context, spec Spec, dest interface{}) (bool, error) {
	err := c.QueryOne(ctx, spec, dest)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *GormClient) Insert(ctx context.Context, table string, rows interface{}) error {
	if !ValidIdent(table) {
		return errors.Errorf("gateway: invalid table name %q", table)
	}
	if err := c.db.WithContext(ctx).Table(table).Create(rows).Error; err != nil {
		return errors.Wrapf(err, "gateway: insert %s", table)
	}
	return nil
}

func (c *GormClient) Update(ctx context.Context, table string, patch map[string]interface{}, filters ...Filter) (int64, error) {
	if !ValidIdent(table) {
		return 0, errors.Errorf("gateway: invalid table name %q", table)
	}
	if len(filters) == 0 {
		return 0, errors.New("gateway: update requires at least one filter")
	}
	tx := c.db.WithContext(ctx).Table(table)
	tx, err := applyFilters(tx, table, filters)
	if err != nil {
		return 0, err
	}
	res := tx.Updates(patch)
	if res.Error != nil {
		return 0, errors.Wrapf(res.Error, "gateway: update %s", table)
	}
	return res.RowsAffected, nil
}

func (c *GormClient) Delete(ctx context.Context, table string, filters ...Filter) (int64, error) {
	if !ValidIdent(table) {
		return 0, errors.Errorf("gateway: invalid table name %q", table)
	}
	if len(filters) == 0 {
		return 0, errors.New("gateway: delete requires at least one filter")
	}
	tx := c.db.WithContext(ctx).Table(table)
	tx, err := applyFilters(tx, table, filters)
	if err != nil {
		return 0, err
	}
	res := tx.Delete(&struct{}{})
	if res.Error != nil {
		return 0, errors.Wrapf(res.Error, "gateway: delete %s", table)
	}
	return res.RowsAffected, nil
}

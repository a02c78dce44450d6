package storage

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/acruxa/storefront/internal/port"
)

const mysqlDuplicateEntry = 1062

// translateDuplicate maps a MySQL duplicate-entry violation onto the port
// sentinel matching the violated unique index.
func translateDuplicate(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != mysqlDuplicateEntry {
		return err
	}
	switch {
	case strings.Contains(me.Message, "order_number"):
		return port.ErrDuplicateOrderNumber
	case strings.Contains(me.Message, "idempotency"):
		return port.ErrDuplicateIdempotencyKey
	case strings.Contains(me.Message, "slug"), strings.Contains(me.Message, "sku"):
		return port.ErrDuplicateProduct
	}
	return err
}

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

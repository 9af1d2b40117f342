package database

import (
	"fmt"

	"gorm.io/gorm"
)

// ChangeChannel is the NOTIFY channel row triggers publish to.
const ChangeChannel = "table_changes"

// WatchedTables are the tables that carry a change trigger.
var WatchedTables = []string{"registrations", "teams", "users"}

const notifyFunction = `
CREATE OR REPLACE FUNCTION campaign_notify_change() RETURNS trigger AS $$
DECLARE
  rec RECORD;
BEGIN
  IF TG_OP = 'DELETE' THEN
    rec := OLD;
  ELSE
    rec := NEW;
  END IF;
  PERFORM pg_notify('` + ChangeChannel + `', json_build_object(
    'table', TG_TABLE_NAME,
    'type', TG_OP,
    'id', rec.id
  )::text);
  RETURN NULL;
END;
$$ LANGUAGE plpgsql;`

// InstallChangeTriggers (re)creates the row triggers that feed ChangeChannel.
// Payloads look like {"table":"teams","type":"INSERT","id":3}.
func InstallChangeTriggers(db *gorm.DB) error {
	if err := db.Exec(notifyFunction).Error; err != nil {
		return fmt.Errorf("create notify function: %w", err)
	}
	for _, table := range WatchedTables {
		drop := fmt.Sprintf(`DROP TRIGGER IF EXISTS campaign_notify_change ON %q`, table)
		if err := db.Exec(drop).Error; err != nil {
			return fmt.Errorf("drop trigger on %s: %w", table, err)
		}
		create := fmt.Sprintf(`CREATE TRIGGER campaign_notify_change
AFTER INSERT OR UPDATE OR DELETE ON %q
FOR EACH ROW EXECUTE FUNCTION campaign_notify_change()`, table)
		if err := db.Exec(create).Error; err != nil {
			return fmt.Errorf("create trigger on %s: %w", table, err)
		}
	}
	return nil
}

package catalog

import "fmt"

// Migrate runs the migration of every deprecated mapping whose path is
// populated and removes the path afterwards. Each property migrates at most
// once per load, and a migrated document has nothing left to migrate, so
// repeated calls are no-ops. It returns the migrated property names.
func Migrate(doc *Document) ([]string, error) {
	var migrated []string
	for _, m := range doc.table.mappings {
		if m.Deprecated == nil || doc.migrated[m.Property] {
			continue
		}
		n := lookupNode(doc.mapping(), m.Path)
		if n == nil {
			continue
		}
		value, err := decodeNode(n)
		if err != nil {
			return migrated, fmt.Errorf("decoding deprecated %s: %w", m.DottedPath(), err)
		}

		if err := m.Deprecated(doc, value); err != nil {
			return migrated, fmt.Errorf("migrating %s: %w", m.Property, err)
		}
		doc.DeleteByPath(m.Path)
		doc.migrated[m.Property] = true
		migrated = append(migrated, m.Property)
	}
	return migrated, nil
}

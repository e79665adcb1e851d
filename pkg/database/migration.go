package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Migration struct {
	Version string
	Name    string
	File    string
}

// ParseMigrationName разбирает имя файла вида 001_create_users.sql.
func ParseMigrationName(file string) (Migration, bool) {
	if !strings.HasSuffix(file, ".sql") {
		return Migration{}, false
	}

	parts := strings.SplitN(strings.TrimSuffix(file, ".sql"), "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Migration{}, false
	}

	return Migration{Version: parts[0], Name: parts[1], File: file}, true
}

// PendingMigrations возвращает файлы миграций из dir, которых нет в applied, по возрастанию версии.
func PendingMigrations(dir string, applied map[string]bool, logger *zap.Logger) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении директории миграций: %w", err)
	}

	var pending []Migration
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		m, ok := ParseMigrationName(entry.Name())
		if !ok {
			logger.Warn("неверный формат имени файла миграции", zap.String("file", entry.Name()))
			continue
		}

		if applied[m.Version] {
			logger.Debug("миграция уже выполнена", zap.String("version", m.Version), zap.String("name", m.Name))
			continue
		}

		pending = append(pending, m)
	}

	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })

	return pending, nil
}

func RunMigrations(ctx context.Context, db *pgxpool.Pool, migrationsDir string, logger *zap.Logger) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS migrations (
			version VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("ошибка при создании таблицы миграций: %w", err)
	}

	rows, err := db.Query(ctx, "SELECT version FROM migrations")
	if err != nil {
		return fmt.Errorf("ошибка при получении списка выполненных миграций: %w", err)
	}

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			rows.Close()
			return fmt.Errorf("ошибка при сканировании записи о миграции: %w", err)
		}
		applied[version] = true
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return fmt.Errorf("ошибка при обработке результатов запроса: %w", err)
	}

	pending, err := PendingMigrations(migrationsDir, applied, logger)
	if err != nil {
		return err
	}

	for _, m := range pending {
		content, err := os.ReadFile(filepath.Join(migrationsDir, m.File))
		if err != nil {
			return fmt.Errorf("ошибка при чтении файла миграции %s: %w", m.File, err)
		}

		logger.Info("выполнение миграции", zap.String("version", m.Version), zap.String("name", m.Name))

		tx, err := db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("ошибка при начале транзакции: %w", err)
		}

		if _, err := tx.Exec(ctx, string(content)); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("ошибка при выполнении миграции %s: %w", m.File, err)
		}

		_, err = tx.Exec(ctx,
			"INSERT INTO migrations (version, name, applied_at) VALUES ($1, $2, $3)",
			m.Version, m.Name, time.Now(),
		)
		if err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("ошибка при записи информации о выполненной миграции: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("ошибка при коммите транзакции: %w", err)
		}
	}

	logger.Info("миграции выполнены", zap.Int("applied", len(pending)))

	return nil
}

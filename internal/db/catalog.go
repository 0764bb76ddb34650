package db

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

const defaultDurationDays = 30

// Catalog - 카테고리 / 챌린지 / 템플릿 시드 데이터
type Catalog struct {
	Categories []CatalogCategory `yaml:"categories"`
}

type CatalogCategory struct {
	Name       string             `yaml:"name"`
	Emoji      string             `yaml:"emoji"`
	Challenges []CatalogChallenge `yaml:"challenges"`
}

type CatalogChallenge struct {
	Title        string            `yaml:"title"`
	DurationDays int               `yaml:"durationDays"`
	Templates    []CatalogTemplate `yaml:"templates"`
}

type CatalogTemplate struct {
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

// LoadCatalog - path가 비어 있으면 embed된 기본 카탈로그를 사용
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalog
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		data = raw
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	titles := make(map[string]struct{})
	for ci := range catalog.Categories {
		category := &catalog.Categories[ci]
		if strings.TrimSpace(category.Name) == "" {
			return nil, fmt.Errorf("parse catalog: category %d has no name", ci)
		}
		for hi := range category.Challenges {
			challenge := &category.Challenges[hi]
			if strings.TrimSpace(challenge.Title) == "" {
				return nil, fmt.Errorf("parse catalog: challenge %d in %q has no title", hi, category.Name)
			}
			if _, dup := titles[challenge.Title]; dup {
				return nil, fmt.Errorf("parse catalog: duplicate challenge %q", challenge.Title)
			}
			titles[challenge.Title] = struct{}{}
			if challenge.DurationDays <= 0 {
				challenge.DurationDays = defaultDurationDays
			}
		}
	}
	return &catalog, nil
}

// SeedCatalog - 카탈로그를 upsert. 여러 번 실행해도 결과가 같다.
func (db *Postgres) SeedCatalog(ctx context.Context, catalog *Catalog) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, category := range catalog.Categories {
		var categoryID int64
		if err := tx.QueryRow(ctx, `
			INSERT INTO categories (name, emoji) VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET emoji = EXCLUDED.emoji
			RETURNING id
		`, category.Name, category.Emoji).Scan(&categoryID); err != nil {
			return fmt.Errorf("seed category %q: %w", category.Name, err)
		}

		for _, challenge := range category.Challenges {
			var challengeID int64
			if err := tx.QueryRow(ctx, `
				INSERT INTO challenges (title, category_id, duration_days) VALUES ($1, $2, $3)
				ON CONFLICT (title) DO UPDATE
				SET category_id = EXCLUDED.category_id, duration_days = EXCLUDED.duration_days
				RETURNING id
			`, challenge.Title, categoryID, challenge.DurationDays).Scan(&challengeID); err != nil {
				return fmt.Errorf("seed challenge %q: %w", challenge.Title, err)
			}

			for _, tmpl := range challenge.Templates {
				if _, err := tx.Exec(ctx, `
					INSERT INTO templates (challenge_id, title, content) VALUES ($1, $2, $3)
					ON CONFLICT (challenge_id, title) DO UPDATE SET content = EXCLUDED.content
				`, challengeID, tmpl.Title, tmpl.Content); err != nil {
					return fmt.Errorf("seed template %q: %w", tmpl.Title, err)
				}
			}
		}
	}

	return tx.Commit(ctx)
}

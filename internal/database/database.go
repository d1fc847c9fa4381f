package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/play2learn/backend/internal/config"
)

func Connect(cfg *config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS schools (
		id           BIGSERIAL PRIMARY KEY,
		name         VARCHAR(255) NOT NULL,
		slug         VARCHAR(100) UNIQUE NOT NULL,
		license_tier VARCHAR(20) NOT NULL DEFAULT 'trial',
		is_active    BOOLEAN NOT NULL DEFAULT TRUE,
		created_at   TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at   TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS users (
		id         BIGSERIAL PRIMARY KEY,
		school_id  BIGINT REFERENCES schools(id),
		email      VARCHAR(255) UNIQUE NOT NULL,
		name       VARCHAR(255) NOT NULL,
		role       VARCHAR(20) NOT NULL DEFAULT 'student',
		grade      INT,
		password   VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	CREATE INDEX IF NOT EXISTS idx_users_school_role ON users(school_id, role);

	CREATE TABLE IF NOT EXISTS parent_children (
		id        BIGSERIAL PRIMARY KEY,
		parent_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		child_id  BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(parent_id, child_id),
		CHECK(parent_id != child_id)
	);

	CREATE TABLE IF NOT EXISTS questions (
		id            BIGSERIAL PRIMARY KEY,
		school_id     BIGINT REFERENCES schools(id),
		prompt        TEXT NOT NULL,
		choices       TEXT[] NOT NULL,
		correct_index INT NOT NULL,
		difficulty    INT NOT NULL DEFAULT 5 CHECK (difficulty >= 1 AND difficulty <= 10),
		operation     VARCHAR(20) NOT NULL,
		level         INT NOT NULL DEFAULT 1,
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_questions_pool ON questions(level, difficulty) WHERE is_active;
	CREATE INDEX IF NOT EXISTS idx_questions_school ON questions(school_id);

	CREATE TABLE IF NOT EXISTS quiz_attempts (
		id              BIGSERIAL PRIMARY KEY,
		student_id      BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		school_id       BIGINT REFERENCES schools(id),
		quiz_type       VARCHAR(20) NOT NULL DEFAULT 'regular',
		status          VARCHAR(20) NOT NULL DEFAULT 'in_progress',
		score           INT NOT NULL DEFAULT 0,
		correct_count   INT NOT NULL DEFAULT 0,
		total_questions INT NOT NULL DEFAULT 0,
		result_band     VARCHAR(20),
		new_profile     INT,
		created_at      TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		graded_at       TIMESTAMP WITH TIME ZONE
	);

	CREATE INDEX IF NOT EXISTS idx_attempts_student ON quiz_attempts(student_id, created_at DESC);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_attempts_one_placement
		ON quiz_attempts(student_id) WHERE quiz_type = 'placement';

	CREATE TABLE IF NOT EXISTS attempt_questions (
		id             BIGSERIAL PRIMARY KEY,
		attempt_id     BIGINT NOT NULL REFERENCES quiz_attempts(id) ON DELETE CASCADE,
		position       INT NOT NULL,
		question_id    BIGINT NOT NULL,
		prompt         TEXT NOT NULL,
		choices        TEXT[] NOT NULL,
		correct_index  INT NOT NULL,
		selected_index INT,
		is_correct     BOOLEAN NOT NULL DEFAULT FALSE,
		difficulty     INT NOT NULL DEFAULT 5,
		operation      VARCHAR(20) NOT NULL,
		UNIQUE(attempt_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_attempt_questions ON attempt_questions(attempt_id, position);

	CREATE TABLE IF NOT EXISTS learner_profiles (
		user_id                  BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		current_profile          INT NOT NULL DEFAULT 1 CHECK (current_profile >= 1 AND current_profile <= 5),
		current_level            INT NOT NULL DEFAULT 0 CHECK (current_level >= 0 AND current_level <= 20),
		last_score               INT,
		last_breakdown           JSONB,
		adaptive_topics          TEXT[],
		attempts_remaining_today INT NOT NULL DEFAULT 3,
		updated_at               TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS reward_settings (
		id                  SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		points_per_correct  INT NOT NULL DEFAULT 10,
		perfect_bonus       INT NOT NULL DEFAULT 25,
		daily_attempt_limit INT NOT NULL DEFAULT 3,
		updated_at          TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	INSERT INTO reward_settings (id) VALUES (1) ON CONFLICT (id) DO NOTHING;

	CREATE TABLE IF NOT EXISTS reward_ledger (
		id         BIGSERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		points     INT NOT NULL,
		reason     VARCHAR(50) NOT NULL,
		attempt_id BIGINT REFERENCES quiz_attempts(id),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_reward_ledger_user ON reward_ledger(user_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS announcements (
		id         BIGSERIAL PRIMARY KEY,
		school_id  BIGINT NOT NULL REFERENCES schools(id) ON DELETE CASCADE,
		author_id  BIGINT NOT NULL REFERENCES users(id),
		title      VARCHAR(255) NOT NULL,
		body       TEXT NOT NULL,
		pinned     BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_announcements_school ON announcements(school_id, pinned DESC, created_at DESC);

	CREATE TABLE IF NOT EXISTS testimonials (
		id              BIGSERIAL PRIMARY KEY,
		school_id       BIGINT REFERENCES schools(id),
		author_id       BIGINT NOT NULL REFERENCES users(id),
		content         TEXT NOT NULL,
		rating          INT NOT NULL CHECK (rating >= 1 AND rating <= 5),
		sentiment_score REAL NOT NULL DEFAULT 0,
		sentiment_label VARCHAR(20) NOT NULL DEFAULT 'neutral',
		status          VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at      TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_testimonials_status ON testimonials(status, created_at DESC);
	`

	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Idempotent column additions for databases created before these fields existed
	alterStatements := []string{
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS grade INT`,
		`ALTER TABLE learner_profiles ADD COLUMN IF NOT EXISTS adaptive_topics TEXT[]`,
		`ALTER TABLE testimonials ADD COLUMN IF NOT EXISTS sentiment_score REAL NOT NULL DEFAULT 0`,
		`ALTER TABLE testimonials ADD COLUMN IF NOT EXISTS sentiment_label VARCHAR(20) NOT NULL DEFAULT 'neutral'`,
	}

	for _, stmt := range alterStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("alter table failed: %w", err)
		}
	}

	return nil
}

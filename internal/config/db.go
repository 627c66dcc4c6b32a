package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	DSN string
}

// LoadDBConfig loads database configuration from environment variables
func LoadDBConfig() (*DBConfig, error) {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return nil, fmt.Errorf("database environment variables not set (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	return &DBConfig{DSN: dsn}, nil
}

// ConnectDB establishes a connection to the PostgreSQL database
func ConnectDB(cfg *DBConfig) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	// Retry connecting to the database a few times
	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(context.Background(), cfg.DSN)
		if err == nil {
			err = pool.Ping(context.Background())
			if err == nil {
				log.Println("Successfully connected to PostgreSQL!")
				return pool, nil
			}
		}
		log.Printf("Failed to connect to database (attempt %d/%d): %v. Retrying in %v...", i+1, maxRetries, err, retryInterval)
		time.Sleep(retryInterval)
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// AutoMigrate creates tables if they don't exist
func AutoMigrate(db *pgxpool.Pool) error {
	sql := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('applicant', 'recruiter', 'admin')),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS applicant_profiles (
		id BIGSERIAL PRIMARY KEY,
		user_id INT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		education JSONB NOT NULL DEFAULT '[]',
		skills TEXT[] NOT NULL DEFAULT '{}',
		cgpa DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (cgpa >= 0 AND cgpa <= 10),
		rating DOUBLE PRECISION NOT NULL DEFAULT -1,
		resume TEXT,
		profile TEXT,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS recruiter_profiles (
		id BIGSERIAL PRIMARY KEY,
		user_id INT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		contact_number TEXT NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS admin_profiles (
		id BIGSERIAL PRIMARY KEY,
		user_id INT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		contact_number TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'System Administrator',
		permissions TEXT[] NOT NULL DEFAULT '{view_all_jobs,view_all_users,view_all_applications,manage_users}',
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS jobs (
		id BIGSERIAL PRIMARY KEY,
		recruiter_id INT NOT NULL,
		title TEXT NOT NULL,
		max_applicants INT NOT NULL,
		max_positions INT NOT NULL,
		date_of_posting TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
		deadline TIMESTAMP WITH TIME ZONE NOT NULL,
		skill_sets TEXT[] NOT NULL DEFAULT '{}',
		job_type VARCHAR(50) NOT NULL CHECK (job_type IN ('full-time', 'part-time', 'work-from-home')),
		duration INT NOT NULL DEFAULT 0,
		salary BIGINT NOT NULL DEFAULT 0,
		rating DOUBLE PRECISION NOT NULL DEFAULT -1,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (recruiter_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS applications (
		id BIGSERIAL PRIMARY KEY,
		applicant_id INT NOT NULL,
		recruiter_id INT NOT NULL,
		job_id BIGINT NOT NULL,
		status VARCHAR(50) NOT NULL CHECK (status IN ('applied', 'shortlisted', 'accepted', 'rejected', 'cancelled', 'finished')) DEFAULT 'applied',
		sop TEXT NOT NULL DEFAULT '',
		date_of_application TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (applicant_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (recruiter_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE
	);

	-- Indexes for performance
	CREATE INDEX IF NOT EXISTS idx_jobs_recruiter_id ON jobs(recruiter_id);
	CREATE INDEX IF NOT EXISTS idx_jobs_job_type ON jobs(job_type);
	CREATE INDEX IF NOT EXISTS idx_jobs_date_of_posting ON jobs(date_of_posting);
	CREATE INDEX IF NOT EXISTS idx_applications_applicant_id ON applications(applicant_id);
	CREATE INDEX IF NOT EXISTS idx_applications_job_id ON applications(job_id);
	CREATE INDEX IF NOT EXISTS idx_applications_status ON applications(status);

    -- Function to update updated_at column
    CREATE OR REPLACE FUNCTION update_updated_at_column()
    RETURNS TRIGGER AS $$
    BEGIN
       NEW.updated_at = NOW();
       RETURN NEW;
    END;
    $$ language 'plpgsql';

    DO $$
    BEGIN
        IF NOT EXISTS (
            SELECT 1
            FROM pg_trigger
            WHERE tgname = 'set_jobs_updated_at' AND tgrelid = 'jobs'::regclass
        ) THEN
            CREATE TRIGGER set_jobs_updated_at
            BEFORE UPDATE ON jobs
            FOR EACH ROW
            EXECUTE FUNCTION update_updated_at_column();
        END IF;
        IF NOT EXISTS (
            SELECT 1
            FROM pg_trigger
            WHERE tgname = 'set_applications_updated_at' AND tgrelid = 'applications'::regclass
        ) THEN
            CREATE TRIGGER set_applications_updated_at
            BEFORE UPDATE ON applications
            FOR EACH ROW
            EXECUTE FUNCTION update_updated_at_column();
        END IF;
    END
    $$;
	`
	_, err := db.Exec(context.Background(), sql)
	if err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	log.Println("AutoMigrate applied successfully")
	return nil
}

package db

// Schema contains all SQL statements for creating tables and indexes.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS exercise (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS personal_record (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(id),
    exo_id INTEGER NOT NULL REFERENCES exercise(id),
    pr_type TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    pr_time TEXT NOT NULL,
    added_weight DOUBLE PRECISION,
    pr_date TEXT NOT NULL,
    weight INTEGER,
    bodyweight_ratio DOUBLE PRECISION
);

CREATE TABLE IF NOT EXISTS strava_activity (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(id),
    strava_id BIGINT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS heart_rate_sample (
    id BIGSERIAL PRIMARY KEY,
    activity_id INTEGER NOT NULL REFERENCES strava_activity(id),
    heart_rate INTEGER NOT NULL,
    time_offset INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS strava_token (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL UNIQUE REFERENCES users(id),
    access_token TEXT NOT NULL,
    refresh_token TEXT NOT NULL,
    expires_at BIGINT NOT NULL,
    strava_athlete_id BIGINT
);

CREATE INDEX IF NOT EXISTS idx_personal_record_user_id ON personal_record(user_id);
CREATE INDEX IF NOT EXISTS idx_personal_record_user_type ON personal_record(user_id, pr_type);
CREATE INDEX IF NOT EXISTS idx_strava_activity_user_id ON strava_activity(user_id);
CREATE INDEX IF NOT EXISTS idx_heart_rate_sample_activity_id ON heart_rate_sample(activity_id);
`

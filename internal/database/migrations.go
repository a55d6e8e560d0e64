package database

import "database/sql"

// migrations holds the schema DDL, applied in order at startup.  Every
// statement is idempotent so repeated startups are safe.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS restaurants (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name          VARCHAR(255) NOT NULL,
		location      VARCHAR(255) NOT NULL,
		description   TEXT,
		cuisine_type  VARCHAR(100) NOT NULL DEFAULT '',
		contact_info  VARCHAR(255) NOT NULL DEFAULT '',
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_restaurants_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS meals (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		restaurant_id  BIGINT UNSIGNED NOT NULL,
		name           VARCHAR(255) NOT NULL,
		description    TEXT,
		available_from DATE NOT NULL,
		available_to   DATE NOT NULL,
		price_cents    INT UNSIGNED NOT NULL DEFAULT 0,
		created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_meals_restaurant (restaurant_id),
		CONSTRAINT fk_meals_restaurant FOREIGN KEY (restaurant_id) REFERENCES restaurants (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id               BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		restaurant_id    BIGINT UNSIGNED NOT NULL,
		user_name        VARCHAR(255) NOT NULL,
		user_email       VARCHAR(255) NOT NULL,
		user_phone       VARCHAR(64) NOT NULL,
		reservation_date DATETIME NOT NULL,
		token            CHAR(36) NOT NULL,
		status           ENUM('PENDING','CONFIRMED','CANCELLED','COMPLETED') NOT NULL DEFAULT 'PENDING',
		created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_reservations_token (token),
		KEY idx_reservations_restaurant_status (restaurant_id, status),
		CONSTRAINT fk_reservations_restaurant FOREIGN KEY (restaurant_id) REFERENCES restaurants (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS weather_cache (
		id              BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		location        VARCHAR(255) NOT NULL,
		day             DATETIME NOT NULL,
		max_temperature DOUBLE NOT NULL,
		min_temperature DOUBLE NOT NULL,
		humidity        DOUBLE NOT NULL,
		chance_of_rain  DOUBLE NOT NULL,
		fetched_at      DATETIME NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_weather_cache_key (location, day),
		KEY idx_weather_cache_fetched (fetched_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema statements in order.
func Migrate(db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

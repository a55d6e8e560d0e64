package database

import (
    "context"
    "database/sql"
    "time"

    "github.com/go-sql-driver/mysql"
)

// Config carries everything Open needs to reach MySQL.  Pool sizing and
// the ping timeout are part of it so deployments can tune them without
// touching code; main maps these from the environment.
type Config struct {
    User            string
    Pass            string
    Host            string
    Port            string
    Name            string
    MaxOpenConns    int
    MaxIdleConns    int
    ConnMaxLifetime time.Duration
    PingTimeout     time.Duration
}

// Open connects to MySQL, applies the pool settings and verifies the
// connection with a bounded ping.  DATETIME columns are decoded into
// time.Time in UTC so every layer above sees one timezone.
func Open(cfg Config) (*sql.DB, error) {
    dsn := mysql.Config{
        User:      cfg.User,
        Passwd:    cfg.Pass,
        Net:       "tcp",
        Addr:      cfg.Host + ":" + cfg.Port,
        DBName:    cfg.Name,
        ParseTime: true,
        Loc:       time.UTC,
        Params:    map[string]string{"charset": "utf8mb4"},
    }

    db, err := sql.Open("mysql", dsn.FormatDSN())
    if err != nil {
        return nil, err
    }

    db.SetMaxOpenConns(cfg.MaxOpenConns)
    db.SetMaxIdleConns(cfg.MaxIdleConns)
    db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

    ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
    defer cancel()
    if err := db.PingContext(ctx); err != nil {
        db.Close()
        return nil, err
    }
    return db, nil
}

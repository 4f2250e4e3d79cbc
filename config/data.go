package config

import (
	"time"

	"github.com/spf13/viper"
)

// Data represents the data layer configuration.
type Data struct {
	Database *Database
}

// Database holds the relational store configuration.
type Database struct {
	Master  *DBNode
	Migrate bool
}

// DBNode represents a single database node configuration.
type DBNode struct {
	Driver          string
	Source          string
	MaxIdleConn     int
	MaxOpenConn     int
	ConnMaxLifeTime time.Duration
}

func getDataConfig(v *viper.Viper) *Data {
	return &Data{
		Database: &Database{
			Master: &DBNode{
				Driver:          v.GetString("data.database.master.driver"),
				Source:          v.GetString("data.database.master.source"),
				MaxIdleConn:     v.GetInt("data.database.master.max_idle_conn"),
				MaxOpenConn:     v.GetInt("data.database.master.max_open_conn"),
				ConnMaxLifeTime: v.GetDuration("data.database.master.conn_max_life_time"),
			},
			Migrate: v.GetBool("data.database.migrate"),
		},
	}
}

package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"shop-tasks" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Admin struct {
		UserName string `default:"" env:"ADMIN_USERNAME"`
		Password string `default:"" env:"ADMIN_PASSWORD"`
		Email    string `default:"" env:"ADMIN_EMAIL"`
	}
	Auth struct {
		JWTSecret             string `default:"change-me" env:"AUTH_JWT_SECRET"`
		JWTExpireInSec        int    `default:"3600" env:"AUTH_JWT_EXPIRE_IN_SEC"`
		JWTRefreshExpireInSec int    `default:"86400" env:"AUTH_JWT_REFRESH_EXPIRE_IN_SEC"`
	}
	Smtp struct {
		User        string `default:"" env:"SMTP_USER"`
		Password    string `default:"" env:"SMTP_PASSWORD"`
		Host        string `default:"" env:"SMTP_HOST"`
		Port        string `default:"" env:"SMTP_PORT"`
		TLSEnabled  *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		SenderEmail string `default:"" env:"SMTP_SENDER_EMAIL"`
		OwnerEmail  string `default:"" env:"SMTP_OWNER_EMAIL"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"shop-tasks-reports" env:"S3_BUCKET_NAME"`
	}
	Telegram struct {
		BotToken string `default:"" env:"TG_BOT_TOKEN"`
	}
	Scheduler struct {
		GenerationFirstDelayInSec int `default:"10" env:"SCHEDULER_GENERATION_FIRST_DELAY_IN_SEC"`
		GenerationIntervalInSec   int `default:"600" env:"SCHEDULER_GENERATION_INTERVAL_IN_SEC"`
		AutoMarkFirstDelayInSec   int `default:"30" env:"SCHEDULER_AUTO_MARK_FIRST_DELAY_IN_SEC"`
		AutoMarkIntervalInSec     int `default:"900" env:"SCHEDULER_AUTO_MARK_INTERVAL_IN_SEC"`
		AutoMarkAfterHour         int `default:"20" env:"SCHEDULER_AUTO_MARK_AFTER_HOUR"`

		DailyReportFirstDelayInSec int `default:"60" env:"SCHEDULER_DAILY_REPORT_FIRST_DELAY_IN_SEC"`
		DailyReportIntervalInSec   int `default:"1800" env:"SCHEDULER_DAILY_REPORT_INTERVAL_IN_SEC"`
		DailyReportAfterHour       int `default:"21" env:"SCHEDULER_DAILY_REPORT_AFTER_HOUR"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}

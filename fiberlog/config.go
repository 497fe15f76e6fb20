package fiberlog

import "github.com/sirupsen/logrus"

// Config настройки логирующей прослойки
type Config struct {
	Logger *logrus.Logger
	Tags   []string
}

// ConfigDefault набор полей по умолчанию для запросов api
var ConfigDefault Config = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		TagIP,
	},
}

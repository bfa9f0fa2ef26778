package conf

import (
	"os"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/zhukovaskychina/xmysql-study/logger"
)

type CommandLineArgs struct {
	ConfigPath string
	// DBFile 命令行指定的数据文件，优先于配置文件
	DBFile string
}

/*
*
[studydb]
db_file            = study.db
prompt             = "db > "
strict_file_length = false
sync_on_close      = true

[logs]
log_error =
log_infos =
log_level = warn
*/
type Cfg struct {
	Raw *ini.File

	// studydb
	DBFile           string
	Prompt           string
	StrictFileLength bool
	SyncOnClose      bool

	// logs
	LogError string
	LogInfos string
	LogLevel string
}

func NewCfg() *Cfg {
	return &Cfg{
		Raw:              ini.Empty(),
		DBFile:           "study.db",
		Prompt:           "db > ",
		StrictFileLength: false,
		SyncOnClose:      true,
		LogLevel:         "warn",
	}
}

func (cfg *Cfg) Load(args *CommandLineArgs) *Cfg {
	cfg.Raw = cfg.loadConfiguration(args)

	cfg.parseStudyCfg(cfg.Raw.Section("studydb"))
	cfg.parseLogsCfg(cfg.Raw.Section("logs"))

	if args.DBFile != "" {
		cfg.DBFile = args.DBFile
	}
	return cfg
}

func (cfg *Cfg) loadConfiguration(args *CommandLineArgs) *ini.File {
	// 如果没有指定配置文件路径，使用默认的conf/my.ini
	configFile := "conf/my.ini"
	if args.ConfigPath != "" {
		configFile = args.ConfigPath
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		logger.Debugf("配置文件不存在: %s，使用默认配置", configFile)
		return ini.Empty()
	}

	parsedFile, err := ini.Load(configFile)
	if err != nil {
		logger.Warnf("解析配置文件失败: %v，使用默认配置", err)
		return ini.Empty()
	}

	logger.Debugf("成功加载配置文件: %s", configFile)
	return parsedFile
}

func valueAsString(section *ini.Section, keyName string, defaultValue string) (value string, err error) {
	if section == nil {
		return defaultValue, nil
	}
	value = section.Key(keyName).MustString(defaultValue)
	if value == "" {
		value = defaultValue
	}
	return value, nil
}

func (cfg *Cfg) parseStudyCfg(section *ini.Section) *Cfg {
	if section == nil {
		return cfg
	}

	dbFile, err := valueAsString(section, "db_file", cfg.DBFile)
	if err == nil {
		cfg.DBFile = dbFile
	}

	// 提示符末尾的空格需要保留，不能走 valueAsString
	if section.HasKey("prompt") {
		cfg.Prompt = section.Key("prompt").String()
	}

	cfg.StrictFileLength = section.Key("strict_file_length").MustBool(cfg.StrictFileLength)
	cfg.SyncOnClose = section.Key("sync_on_close").MustBool(cfg.SyncOnClose)

	return cfg
}

func (cfg *Cfg) parseLogsCfg(section *ini.Section) *Cfg {
	if section == nil {
		return cfg
	}

	logError, err := valueAsString(section, "log_error", cfg.LogError)
	if err == nil {
		cfg.LogError = logError
	}

	logInfos, err := valueAsString(section, "log_infos", cfg.LogInfos)
	if err == nil {
		cfg.LogInfos = logInfos
	}

	logLevel, err := valueAsString(section, "log_level", cfg.LogLevel)
	if err == nil {
		cfg.LogLevel = strings.ToLower(logLevel)
		// 验证日志级别是否有效
		validLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
		isValid := false
		for _, level := range validLevels {
			if cfg.LogLevel == level {
				isValid = true
				break
			}
		}
		if !isValid {
			logger.Warnf("无效的日志级别 '%s', 使用默认级别 'warn'", logLevel)
			cfg.LogLevel = "warn"
		}
	}

	return cfg
}

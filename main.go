package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/zhukovaskychina/xmysql-study/logger"
	"github.com/zhukovaskychina/xmysql-study/server/conf"
	"github.com/zhukovaskychina/xmysql-study/server/dispatcher"
	"github.com/zhukovaskychina/xmysql-study/server/storage/table"
)

const help = `
******************************************************************************************
*用法: xmysql-study [-configPath conf/my.ini] [db文件]
*1. -- configPath   指定my.ini配置文件
*2. -- db文件       数据文件路径，优先于配置中的 db_file
*命令: insert <id> <username> <email> | select | .exit | .constants | .stats
*      .checksum | .dump <path> | .load <path>
******************************************************************************************
`

func main() {
	var configPath string
	flag.StringVar(&configPath, "configPath", "", "配置文件路径")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), help)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := &conf.CommandLineArgs{
		ConfigPath: configPath,
		DBFile:     flag.Arg(0),
	}
	config := conf.NewCfg().Load(args)

	logConfig := logger.LogConfig{
		ErrorLogPath: config.LogError,
		InfoLogPath:  config.LogInfos,
		LogLevel:     config.LogLevel,
	}
	if err := logger.InitLogger(logConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	logger.Debugf("Config loaded: db_file=%s, log_level=%s", config.DBFile, config.LogLevel)

	t, err := table.OpenWithOptions(config.DBFile, table.Options{
		StrictLength: config.StrictFileLength,
		SyncOnClose:  config.SyncOnClose,
	})
	if err != nil {
		logger.Fatalf("Unable to open file %s: %v", config.DBFile, err)
	}

	err = dispatcher.NewCommandDispatcher(config, t, os.Stdout).Run(os.Stdin)
	if errors.Is(err, dispatcher.ErrInputClosed) {
		fmt.Println("Error reading input")
		os.Exit(1)
	}
	if err != nil {
		logger.Fatalf("%+v", err)
	}
}

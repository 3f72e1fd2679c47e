package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"foodshop/internal/config"
	"foodshop/internal/model"
	"foodshop/internal/repository"
	"foodshop/internal/service"
	"foodshop/pkg/database"
	"foodshop/pkg/logger"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(1)
	}
}

// newApp 命令行：创建管理员或卖家账号
func newApp(in io.Reader, out io.Writer) *cli.App {
	return &cli.App{
		Name:      "createuser",
		Usage:     "创建 Food Shop 账号 (admin / seller)",
		Reader:    in,
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "role", Aliases: []string{"r"}, Usage: "账号角色: admin | seller"},
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "用户名"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "密码"},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "邮箱"},
			&cli.StringFlag{Name: "data-dir", EnvVars: []string{"DATA_DIR"}, Usage: "文件存储目录"},
			&cli.StringFlag{Name: "store-driver", EnvVars: []string{"STORE_DRIVER"}, Usage: "file | sqlite | postgres"},
			&cli.StringFlag{Name: "dsn", EnvVars: []string{"DATABASE_DSN"}, Usage: "数据库连接字符串"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if v := c.String("data-dir"); v != "" {
		cfg.Store.DataDir = v
	}
	if v := c.String("store-driver"); v != "" {
		cfg.Store.Driver = strings.ToLower(v)
	}
	if v := c.String("dsn"); v != "" {
		cfg.Store.DSN = v
	}

	log, err := logger.New("warn", cfg.Log.Format)
	if err != nil {
		return err
	}
	defer log.Sync()

	// 缺失的参数交互式输入
	reader := bufio.NewReader(c.App.Reader)
	input := map[string]string{}
	for _, name := range []string{"role", "username", "password", "email"} {
		v := strings.TrimSpace(c.String(name))
		if v == "" {
			if v, err = prompt(reader, c.App.Writer, name); err != nil {
				return err
			}
		}
		input[name] = v
	}

	role := model.Role(strings.ToLower(input["role"]))
	if !role.Valid() {
		return fmt.Errorf("角色必须是 admin 或 seller: %q", input["role"])
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	accounts := service.NewAccountService(
		repository.NewAccountRepository(store, log),
		service.NewSessionStore(cfg.Session.TTL),
		log,
	)

	account, err := accounts.CreateAccount(ctx, role, input["username"], input["password"], input["email"])
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUsername) {
			return fmt.Errorf("用户名已存在: %s", input["username"])
		}
		return err
	}

	fmt.Fprintf(c.App.Writer, "已创建 %s 账号 %s (id=%s)\n", account.Role, account.Username, account.ID)
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.RecordStore, error) {
	dsn := cfg.Store.DSN
	if cfg.Store.Driver == database.DriverSQLite {
		dsn = cfg.SQLiteDSN()
	}
	return database.OpenStore(ctx, database.Options{
		Driver:  cfg.Store.Driver,
		DataDir: cfg.Store.DataDir,
		DSN:     dsn,
	}, log)
}

func prompt(r *bufio.Reader, w io.Writer, name string) (string, error) {
	fmt.Fprintf(w, "%s: ", name)
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("读取 %s 失败: %w", name, err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("%s 不能为空", name)
	}
	return line, nil
}

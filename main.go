// Йоу, чат! Сьогодні ми будемо розбирати консольну тулзу для телепортів!
// Вона відкриває збережені світи, розбирає рядок призначення і показує,
// куди саме полетить гравець. Сам телепорт робить сервер.

// Пакет main - це точка входу нашої програми, звідси все починається!
package main

import (
	"errors"
	// flag - це пакет для роботи з командним рядком
	"flag"
	"fmt"
	"os"
	// debug дозволяє отримати інформацію про збірку програми
	"runtime/debug"
	// strings потрібен для форматування помилок
	"strings"

	// toml - крутий формат для конфігів, як JSON але читабельніший
	"github.com/BurntSushi/toml"
	// zap - мегашвидкий логер, набагато швидший за fmt.Printf
	"go.uber.org/zap"

	"FlowyWarp/game"
	"FlowyWarp/world"
)

var (
	// isDebug - більше логів, в тому числі кожен крок пошуку
	isDebug    = flag.Bool("debug", false, "Enable debug log output")
	configPath = flag.String("config", "config.toml", "Path to the config file")
	issuerName = flag.String("as", "console", "Name of the player who runs the command")
)

const usage = `usage: flowywarp [flags] <command> [args]

commands:
  resolve <destination>                 where the destination leads
  suggest [partial]                     completions for a destination
  portal <world:x,y,z>                  exit next to the nearest allowed portal
  anchor list
  anchor set <name> <world:x,y,z[:pitch:yaw]>
  anchor del <name>
`

// console - той, хто виконує команду з консолі
type console string

func (c console) Name() string { return string(c) }

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	// В дебаг режимі логи будуть детальніші, але повільніші
	var logger *zap.Logger
	if *isDebug {
		logger = unwrap(zap.NewDevelopment())
	} else {
		logger = unwrap(zap.NewProduction())
	}
	defer func(logger *zap.Logger) {
		// stderr не вміє sync на деяких системах, тому помилку ігноруємо
		_ = logger.Sync()
	}(logger)
	printBuildInfo(logger)

	config, err := readConfig(*configPath)
	if err != nil {
		logger.Error("Read config fail", zap.Error(err))
		os.Exit(1)
	}

	g, err := game.NewGame(logger, config)
	if err != nil {
		logger.Error("Init game fail", zap.Error(err))
		os.Exit(1)
	}

	if err := run(g, console(*issuerName), flag.Args()); err != nil {
		logger.Error("Command fail", zap.Error(err))
		os.Exit(1)
	}
}

var errUsage = errors.New("bad arguments, run with -h for help")

func run(g *game.Game, issuer console, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	switch cmd, args := args[0], args[1:]; cmd {
	case "resolve":
		if len(args) != 1 {
			return errUsage
		}
		res, err := g.Teleport(issuer, args[0])
		if err != nil {
			return err
		}
		fmt.Println(res.Location)
		if res.Adjusted {
			fmt.Println("(moved to the nearest safe location)")
		}
		if res.Unsafe {
			fmt.Println("(no safe location found nearby)")
		}

	case "suggest":
		partial := ""
		if len(args) > 0 {
			partial = args[0]
		}
		for _, s := range g.Suggest(issuer, partial) {
			fmt.Println(s)
		}

	case "portal":
		if len(args) != 1 {
			return errUsage
		}
		origin, err := world.ParseLocation(args[0])
		if err != nil {
			return err
		}
		exit, typ, err := g.PortalExit(origin)
		if err != nil {
			return err
		}
		fmt.Println(exit, typ)

	case "anchor":
		return runAnchor(g, args)

	default:
		return errUsage
	}
	return nil
}

func runAnchor(g *game.Game, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	anchors := g.Anchors()
	switch args[0] {
	case "list":
		for _, name := range anchors.Names() {
			loc, _ := anchors.Get(name)
			fmt.Println(name, loc)
		}
	case "set":
		if len(args) != 3 {
			return errUsage
		}
		loc, err := world.ParseLocation(args[2])
		if err != nil {
			return err
		}
		return anchors.Set(args[1], loc)
	case "del":
		if len(args) != 2 {
			return errUsage
		}
		ok, err := anchors.Delete(args[1])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("anchor %q does not exist", args[1])
		}
	default:
		return errUsage
	}
	return nil
}

// printBuildInfo виводить інформацію про збірку
// Це допомагає знайти проблеми з версіями бібліотек
func printBuildInfo(logger *zap.Logger) {
	binaryInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	settings := make(map[string]string)
	for _, v := range binaryInfo.Settings {
		settings[v.Key] = v.Value
	}
	logger.Debug("Build info", zap.Any("settings", settings))
}

// readConfig читає конфіг з файлу поверх значень за замовчуванням
// Якщо знайдемо невідомі налаштування - повернемо помилку
func readConfig(path string) (game.Config, error) {
	c := game.DefaultConfig()
	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return game.Config{}, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		var err errUnknownConfig
		for _, key := range undecoded {
			err = append(err, key.String())
		}
		return game.Config{}, err
	}

	return c, nil
}

// errUnknownConfig - це список невідомих налаштувань
// Коли знаходимо щось чого не очікували в конфігу
type errUnknownConfig []string

func (e errUnknownConfig) Error() string {
	return "unknown config keys: [" + strings.Join(e, ", ") + "]"
}

// unwrap - хелпер функція яка спрощує обробку помилок
// Якщо є помилка - відразу панікуємо
func unwrap[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/etnz/qianbao"
	"github.com/etnz/qianbao/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// IsCommand reports whether name is a built-in subcommand of qb.
func IsCommand(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, c := range Commands() {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// Completion describes the qb command line for shell completion.
// global holds the flags accepted before the subcommand.
func Completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(global),
	}
	for _, c := range Commands() {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		sub := &complete.Command{Flags: flagPredictors(f)}
		if c.Name() == "topic" {
			sub.Args = predictTopics
		}
		root.Sub[c.Name()] = sub
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	return root
}

// flagPredictors returns the predictor of every flag in f.
func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		flags[fl.Name] = predictorFor(fl)
	})
	return flags
}

func predictorFor(fl *flag.Flag) complete.Predictor {
	switch fl.Name {
	case "store":
		return predict.Set{"file", "redis", "memory"}
	case "log-level":
		return predict.Set{"debug", "info", "warning", "error"}
	case "dir":
		return predict.Dirs("*")
	case "icon":
		var symbols []string
		for _, p := range qianbao.Presets() {
			symbols = append(symbols, p.Symbol)
		}
		return predict.Set(symbols)
	case "icon-file":
		return predict.Files("*")
	case "o":
		return predict.Files("*.png")
	case "id":
		return complete.PredictFunc(predictIDs)
	}
	if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	return predict.Something
}

var predictTopics = complete.PredictFunc(func(prefix string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return append(topics, "readme")
})

// predictIDs completes asset ids from the configured store.
func predictIDs(prefix string) []string {
	store, closeStore, err := openStore(context.Background())
	if err != nil {
		return nil
	}
	defer closeStore()
	var ids []string
	for _, a := range store.Assets() {
		if strings.HasPrefix(a.ID, prefix) {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

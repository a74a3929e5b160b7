package cmd

import (
	"flag"

	"github.com/etnz/ledger"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the ldg command line for shell completion.
func Completion(global *flag.FlagSet) *complete.Command {
	c := &complete.Command{
		Sub:   make(map[string]*complete.Command, len(Commands)),
		Flags: flagPredictors(global),
	}
	for _, sub := range Commands {
		f := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		sub.SetFlags(f)
		c.Sub[sub.Name()] = &complete.Command{
			Flags: flagPredictors(f),
			Args:  complete.PredictFunc(accountNames),
		}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		c.Sub[name] = &complete.Command{}
	}
	return c
}

func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		switch fl.Name {
		case "ledger-file", "prices-file":
			flags[fl.Name] = predict.Files("*")
			return
		}
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[fl.Name] = predict.Nothing
			return
		}
		flags[fl.Name] = predict.Something
	})
	return flags
}

// accountNames predicts the account names of the default JSON ledger file.
func accountNames(prefix string) []string {
	if isSQLite(*ledgerFile) {
		return nil
	}
	l, err := ledger.Load(*ledgerFile)
	if err != nil {
		return nil
	}
	var names []string
	for _, a := range l.All() {
		names = append(names, a.Name())
	}
	return names
}

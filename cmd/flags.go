package main

import (
	"log"

	"github.com/spf13/pflag"
)

func mustBind(key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		log.Fatalf("binding flag %q: %v", key, err)
	}
}

// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// Config is the sample settings file. Username and Password are only read by the
// username/password sample; Username also picks the cached account the samples reuse.
type Config struct {
	ClientID  string   `json:"client_id"`
	Authority string   `json:"authority"`
	Scopes    []string `json:"scopes"`
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	// CacheDir is where signed-in accounts are kept between runs.
	CacheDir string `json:"cache_dir"`
}

func (c *Config) validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("client_id is required")
	}
	if len(c.Scopes) == 0 {
		return fmt.Errorf("at least one scope is required")
	}
	return nil
}

// CreateConfig reads fileName. SAMPLE_PASSWORD, when set, overrides the password so it
// needn't be written to disk.
func CreateConfig(fileName string) *Config {
	data, err := os.ReadFile(fileName)
	if err != nil {
		log.Fatal(err)
	}

	config := &Config{Authority: "https://login.microsoftonline.com/common", CacheDir: ".msal-sample-cache"}
	if err := json.Unmarshal(data, config); err != nil {
		log.Fatal(err)
	}
	if pw := os.Getenv("SAMPLE_PASSWORD"); pw != "" {
		config.Password = pw
	}
	if err := config.validate(); err != nil {
		log.Fatalf("%s: %s", fileName, err)
	}
	return config
}

// accounts returns the persistent account cache of config.
func (c *Config) accounts() accountCache {
	return accountCache{dir: c.CacheDir}
}

/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/killallgit/voice-search-api/cmd"

// @title           Voice Search API
// @version         1.0.0
// @description     Phonetic voice clip search with asynchronous transcription
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/voice-search-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}

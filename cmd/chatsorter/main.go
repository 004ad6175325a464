// Command chatsorter calls the ChatSorter memory API from the command line
// and prints each response as JSON.
//
//	chatsorter add user123 "My favorite food is pizza"
//	chatsorter context user123 "what do I like to eat?"
//	chatsorter prompt user123 "recommend a dinner" --template "Be brief. {context}User: {message}"
//
// The API key is read from --api-key, CHATSORTER_API_KEY (a .env file in the
// working directory is loaded) or the api_key entry of ~/.chatsorter.yaml.
package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

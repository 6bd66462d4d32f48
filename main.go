/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/blogpessoal/blogapi/cmd"

func main() {
	cmd.Execute()
}

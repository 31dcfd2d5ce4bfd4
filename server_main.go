//go:build http

package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/jgajek/alkindus/mcp_server"
)

func main() {
	router := gin.Default()

	router.POST("/caesar/shift", gin.WrapF(mcp_server.HandleCaesarShift))
	router.POST("/ngrams/build", gin.WrapF(mcp_server.HandleNgramModelBuild))
	router.POST("/solve", gin.WrapF(mcp_server.HandleCryptogramSolve))

	router.GET("/health", func(c *gin.Context) { c.String(200, "ok") })
	router.GET("/ready", func(c *gin.Context) { c.String(200, "ready") })

	log.Println("Starting alkindus HTTP server on :8080")
	if err := router.Run(":8080"); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

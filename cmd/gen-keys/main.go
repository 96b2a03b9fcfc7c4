package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/ticketzen/boarding-service/internal/crypto"
)

func main() {
	var privPath, pubPath string
	flag.StringVar(&privPath, "private", "keys/qr_private.pem", "path to private key PEM")
	flag.StringVar(&pubPath, "public", "keys/qr_public.pem", "path to public key PEM")
	flag.Parse()

	svc, err := crypto.NewSigningService(privPath, pubPath)
	if err != nil {
		log.Fatalf("keygen: %v", err)
	}

	pubPEM, err := svc.PublicKeyPEM()
	if err != nil {
		log.Fatalf("public key pem: %v", err)
	}

	fmt.Println("private key:", privPath)
	fmt.Println("public key: ", pubPath)
	fmt.Println(string(pubPEM))
}

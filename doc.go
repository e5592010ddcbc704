// Package blobsas mints Shared Access Signature (SAS) URLs for Azure Blob
// Storage, authorizing a single read, write, or delete against one named
// blob without handing out the storage account's master key.
//
// The core is the Signer: it computes an expiry from a TTL, builds the
// canonical string-to-sign the storage service reconstructs on its side,
// obtains a signature from an Authenticator, and assembles the final
// request (endpoint, query parameters, headers). The canonical string must
// match the service's reconstruction byte for byte or every signed request
// is rejected.
//
// # Key Components
//
//   - Signer: stateless, reentrant SAS minting for read/write/delete
//   - Authenticator: signature primitive; SharedKeyLite is the built-in
//     HMAC-SHA256 implementation over the account key
//   - Clock: timestamp source, injectable for deterministic tests
//   - GetOptions: byte-range and conditional headers for signed reads
//
// # Example Usage
//
//	auth, err := blobsas.NewSharedKeyLite(accountKey)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	signer, err := blobsas.NewSigner("myaccount", auth)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Mint a read URL valid for the default 15 minutes
//	req, err := signer.SignRead("mycontainer", "myblob.txt")
//
//	// Mint a write URL for a blob of known size
//	req, err = signer.SignWrite("mycontainer", blobsas.Blob{Name: "new.txt", Size: 42})
//
// See the client package for dispatching signed requests and the credstore
// package for account key resolution.
package blobsas

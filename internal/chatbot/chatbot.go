// Package chatbot answers help questions from a fixed keyword table.
package chatbot

import (
	"strings"

	"github.com/samber/lo"
)

type rule struct {
	keywords []string
	reply    string
}

// Rules are checked in order; the first rule with a keyword contained in the
// lower-cased message wins.
var rules = []rule{
	{[]string{"blockchain", "technology", "how it works"},
		"Files are pinned to IPFS and their metadata is recorded in a smart contract, so ownership and sharing live on-chain."},
	{[]string{"ipfs", "storage"},
		"File contents are stored on IPFS and addressed by their content hash; the gateway URL is derived from that hash."},
	{[]string{"smart contract", "contract"},
		"The vault contract stores file metadata, who owns each file, and who has been granted access."},
	{[]string{"upload", "add file"},
		"Connect your wallet, choose a file, add a description and tags, then confirm the transaction in your wallet."},
	{[]string{"share", "access", "permission"},
		"You can grant a wallet access to all of your files, or to individual files, from the sharing page. Revoking asks for confirmation."},
	{[]string{"public", "private"},
		"Public files appear in the public listing for everyone. Private files are only visible to you and the wallets you grant."},
	{[]string{"file types", "supported"},
		"Images, documents, video and audio are recognised; anything else is listed as other."},
	{[]string{"secure", "security", "safe"},
		"Access rules are enforced by the contract and every change is signed by your wallet."},
	{[]string{"benefit", "advantage", "why"},
		"No central operator holds your files or decides who can see them; the rules are public and verifiable."},
	{[]string{"metamask", "wallet", "connect"},
		"Install MetaMask, unlock it, and press Connect Wallet. You will be asked to sign a short login message."},
	{[]string{"sepolia", "testnet", "network"},
		"The vault runs on the Sepolia test network. If you see a network error, switch your wallet to Sepolia."},
	{[]string{"gas", "cost", "fee"},
		"Granting and revoking access are transactions and cost a little Sepolia ETH in gas. Reading files is free."},
	{[]string{"error", "problem", "not working"},
		"Check that your wallet is connected to Sepolia and has some test ETH, then refresh and try again."},
	{[]string{"pinata", "api key"},
		"Uploads are pinned through Pinata; the operator configures the API key, you do not need one."},
	{[]string{"help", "guide", "tutorial"},
		"Ask me about uploading, sharing, public files, wallets, networks or fees."},
	{[]string{"roadmap", "future", "coming"},
		"Planned: folders, expiring share links and encrypted uploads."},
	{[]string{"hello", "hi", "hey"},
		"Hello! How can I help you with your vault today?"},
	{[]string{"thank", "thanks"},
		"You're welcome!"},
}

const Fallback = "I'm not sure about that. Try asking about uploading, sharing, wallets or the Sepolia network."

// Reply returns the canned answer for message.
func Reply(message string) string {
	m := strings.ToLower(message)
	for _, r := range rules {
		if lo.SomeBy(r.keywords, func(k string) bool { return strings.Contains(m, k) }) {
			return r.reply
		}
	}
	return Fallback
}

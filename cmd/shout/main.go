// Command shout shows drop-down banners in the terminal and sends desktop
// notifications to shoutd.
package main

func main() {
	Execute()
}

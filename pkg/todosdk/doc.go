/*
Package todosdk is a client for the todo web service.

The service speaks HTML forms and cookies rather than JSON, so the SDK plays
the part of a browser: an SDKClient covers the public endpoints and opens
Sessions, and a Session keeps the authToken cookie and drives the task forms.

	client := todosdk.NewSDKClient("http://localhost:8080")

	health, err := client.GetReadiness(ctx)

	session, err := client.Register(ctx, "alice", "s3cret", "s3cret")
	page, err := session.AddTask(ctx, "buy milk")
	for _, t := range page.Tasks {
		fmt.Println(t.ID, t.Description, t.Complete)
	}
	err = session.Logout(ctx)

Form failures come back as *FormError carrying the status code and the
message the service rendered. Requests made after the session has lost its
cookie, or whose token the server no longer knows, fail with ErrNotSignedIn.
*/
package todosdk

// Copyright (c) 2018 Andrew Fort
//

/*
Package regerr defines the registry parser's error taxonomy.

Every error the parser returns is fatal and carries an *Error somewhere in
its chain, retrievable with As. A parse error means the input grammar has
moved on from what the parser understands; callers should treat it as a
signal to update the parser rather than something to route around.
*/
package regerr

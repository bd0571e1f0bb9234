/*
 * Copyright 2024 National Library of Norway.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package gotxtar allows parsing, creating and extracting txtar archives.

# Txtar

A txtar archive is a trivial text-based file archive. It is easy to create and edit by hand, it can store trees of
text files (test cases for instance) in a single file and it diffs nicely in version control and code reviews.

An archive is zero or more comment lines followed by a sequence of file entries. Each file entry begins with a file
marker line of the form "-- FILENAME --" and is followed by zero or more file content lines making up the file data.
The comment or file content ends at the next file marker line. The file marker line must begin with the three-byte
sequence "-- " and end with the three-byte sequence " --", but the enclosed file name can be surrounded by additional
white space, all of which is stripped. A marker line is at least six bytes long, so "-- --" is ordinary text while
"--  --" introduces a file with an empty name.

If the archive is missing a trailing newline on the final line, parsers consider a final newline to be present anyway.

There are no possible syntax errors in a txtar archive.

Storing binary data, file modes and special files like symbolic links is not supported.

# Parse archives

[Parse], [ParseString] and [ParseFile] parse an archive. The [Unmarshaler] is used to parse an archive from an
io.Reader. It is initialized with [NewUnmarshaler].

# Create archives

The [ArchiveBuilder] is used to create archives programmatically. It is initialized with [NewArchiveBuilder].
[FromDir] creates an archive from the files in a directory.

[Format] returns the canonical form of an archive and the [Marshaler] writes it to an io.Writer. [WriteFile] writes
an archive to a file. Formatting a parsed archive and parsing the result gives the same archive.

# Extract archives

[Extract] writes the files of an archive to a directory.

# Validation

[Validate] reports properties of an archive which are legal, but might surprise, like duplicate file names or names
which can not be extracted. Validation never makes parsing fail.
*/
package gotxtar
